package main

import "go.uber.org/zap"

type OpenCmd struct {
	Query string `arg:"" help:"Challenge ID or search text"`
}

func (cmd *OpenCmd) Run(g *Globals) error {
	entry, err := findEntry(g.newStore(), cmd.Query)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	target, err := resolveURL(g.Config.SiteURL, entry.URL)
	if err != nil {
		return err
	}

	g.Logger.Debug("opening challenge", zap.String("id", entry.ID), zap.String("url", target))
	name, args := openerCommand(currentOS, target)
	return g.runCmd(name, args...)
}
