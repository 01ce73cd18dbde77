package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/prince-Sf/Corelytics/internal/app"
	"github.com/prince-Sf/Corelytics/internal/config"
	"github.com/prince-Sf/Corelytics/internal/taxonomy"
)

var version = "dev"

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "corelytics",
		Short: "Taxonomy-guided email intent resolution",
		Long: `Corelytics walks a four-level taxonomy (domain, recipient, category,
scenario), compiles the selection into a behavioral brief and asks a
configured model to write the email.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a JSON or YAML config file (default: $CORELYTICS_CONFIG_PATH or ./config/config.*)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newTreeCmd())
	cmd.AddCommand(newBriefCmd(opts))
	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "corelytics version %s\n", version)
		},
	}
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if strings.TrimSpace(o.configPath) != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if cfg.Version == "" {
		cfg.Version = version
	}
	return cfg, nil
}

// loadStore prefers an explicit document path, then the configured one.
func (o *rootOptions) loadStore(path string) (*taxonomy.Store, error) {
	if strings.TrimSpace(path) != "" {
		return app.LoadTaxonomy(path)
	}
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return app.LoadTaxonomy(cfg.Taxonomy.Path)
}

func printStatus(w io.Writer, symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Fprintf(w, "%s %s\n", c.Sprint(symbol), message)
}
