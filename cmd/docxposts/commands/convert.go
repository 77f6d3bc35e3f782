package commands

// ConvertCmd implements the 'convert' command.
type ConvertCmd struct {
	PathFlags `embed:""`
}

func (c *ConvertCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, c.overrides())
	if err != nil {
		return err
	}

	svc, cleanup, err := newService(g, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signalContext()
	defer stop()

	_, err = svc.Run(ctx)
	return err
}
