package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/fp-node-manager/fpnm/cmd"
	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/internal/paths"
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown and man page documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		outputDir, _ := c.Flags().GetString("dir")
		if outputDir == "" {
			return errors.NewUserError(errors.New("output directory is required"), "pass --dir")
		}
		withMan, _ := c.Flags().GetBool("man")

		mdDir := filepath.Join(outputDir, "md")
		if err := paths.EnsureDir(mdDir, 0o755); err != nil {
			return errors.IOf(err, "creating output directory")
		}
		if err := doc.GenMarkdownTreeCustom(rootCmd, mdDir, filePrepender, linkHandler); err != nil {
			return errors.Wrap(err, "generating markdown")
		}

		if withMan {
			manDir := filepath.Join(outputDir, "man1")
			if err := paths.EnsureDir(manDir, 0o755); err != nil {
				return errors.IOf(err, "creating man directory")
			}
			header := &doc.GenManHeader{
				Title:   "FPNM",
				Section: "1",
				Source:  "fpnm " + cmd.Version,
				Manual:  "Project & Node Manager",
			}
			if err := doc.GenManTree(rootCmd, header, manDir); err != nil {
				return errors.Wrap(err, "generating man pages")
			}
		}

		fmt.Fprintf(c.OutOrStdout(), "Documentation generated in %s\n", outputDir)
		return nil
	},
}

func init() {
	genDocCmd.Flags().StringP("dir", "d", "", "output directory for documentation")
	genDocCmd.Flags().Bool("man", false, "also generate man pages")
	rootCmd.AddCommand(genDocCmd)
}

func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	// fpnm_context-menu_enable.md -> fpnm context-menu enable
	title := strings.ReplaceAll(base, "_", " ")

	return fmt.Sprintf(`---
title: "%s"
description: "Reference for %s command"
---
`, title, title)
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/docs/reference/" + strings.ToLower(base) + "/"
}
