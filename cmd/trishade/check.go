package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/polyfloyd/trishade/scene"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Build the shader program headlessly and report diagnostics",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	addSceneFlags(checkCmd)
	checkCmd.Flags().Bool("all", false, "check every program variant")
}

func runCheck(cmd *cobra.Command, args []string) error {
	variants := []scene.Variant{variantOf(sess.cfg.Scene)}
	if all, _ := cmd.Flags().GetBool("all"); all {
		variants = []scene.Variant{scene.Plain, scene.Colored}
	}

	teardown, err := headlessContext(sess.cfg.GL)
	if err != nil {
		return err
	}
	defer teardown()

	ok := color.New(color.FgGreen, color.Bold)
	if sess.color {
		ok.EnableColor()
	} else {
		ok.DisableColor()
	}

	builder := newBuilder()
	var failed bool
	for _, v := range variants {
		prog, err := builder.Build(scene.Sources(v))
		if err != nil {
			if rerr := reportBuildError(cmd, err, v); rerr != errReported {
				return rerr
			}
			failed = true
			continue
		}
		prog.Release()
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ok.Sprint("ok"), v)
	}
	if failed {
		return errReported
	}
	return nil
}
