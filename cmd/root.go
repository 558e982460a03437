/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gndicom/internal/iofs"
	"github.com/gnames/gndicom/internal/iologger"
	gndicom "github.com/gnames/gndicom/pkg"
	"github.com/gnames/gndicom/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	opts []config.Option
	cfg  *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			gndicom.Version, gndicom.Build),
		Use:   "gndicom",
		Short: "GNdicom catalogs DICOM files and keeps albums of images",
		Long: `GNdicom builds an in-memory catalog of DICOM files found in a
directory tree, answers queries about patients, studies and series, and
keeps user-curated albums of image files between runs.

The catalog groups images as Patient -> Study -> Series -> Image. It is
rebuilt from files on every run. Albums are stored on disk as JSON
documents (default) or in a SQLite database.

Commands:
  - scan: build the catalog and report what was found
  - query: find patients, studies or series
  - album: create and edit albums, or make them from query results

Configuration precedence (highest to lowest):
  1. CLI flags (--format)
  2. Environment variables (GNDICOM_*)
  3. Config file (~/.config/gndicom/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (albums.backend -> GNDICOM_ALBUMS_BACKEND).

  Examples:
    GNDICOM_SCAN_ROOT          Default directory to scan
    GNDICOM_SCAN_PREFIX        Only files with this name prefix
    GNDICOM_ALBUMS_DIR         Directory of the album store
    GNDICOM_ALBUMS_BACKEND     Album store: json or sqlite
    GNDICOM_LOG_LEVEL          Log level (debug/info/warn/error)
    GNDICOM_OUTPUT_FORMAT      Output: auto, table, json or yaml`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gndicom version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gndicom")

	rootCmd.PersistentFlags().StringP("format", "f", "",
		"output format: auto, table, json or yaml")

	rootCmd.AddCommand(getScanCmd())
	rootCmd.AddCommand(getQueryCmd())
	rootCmd.AddCommand(getAlbumCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	opts = append(opts, config.OptHomeDir(homeDir))
	opts = append(opts, flagOptions(cmd)...)
	cfg.Update(opts)

	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log)
}

func runRoot(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Environment variables are bound one by one so it is clear which of
	// them are allowed. They match the fields of config.ToOptions().
	v.SetEnvPrefix("GNDICOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Scan configuration
	_ = v.BindEnv("scan.root")
	_ = v.BindEnv("scan.prefix")
	_ = v.BindEnv("scan.extensions")
	_ = v.BindEnv("scan.skip_hidden")

	// Albums configuration
	_ = v.BindEnv("albums.dir")
	_ = v.BindEnv("albums.backend")
	_ = v.BindEnv("albums.creator")

	// Log configuration
	_ = v.BindEnv("log.level")
	_ = v.BindEnv("log.format")
	_ = v.BindEnv("log.destination")

	// Output configuration
	_ = v.BindEnv("output.format")

	v.AutomaticEnv()
}
