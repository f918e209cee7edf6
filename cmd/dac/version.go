package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dac/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var (
	versionFormat   string
	versionShowHash bool
	versionShowDate bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include git commit hash")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "include build timestamp")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show dac build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := versionPayload{
			Tool:    "dac",
			Version: version.Version,
		}
		if versionShowHash {
			payload.GitCommit = version.GitCommit
		}
		if versionShowDate {
			payload.BuildDate = version.BuildDate
		}

		switch strings.ToLower(versionFormat) {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		case "pretty":
			fmt.Printf("dac %s\n", payload.Version)
			if payload.GitCommit != "" {
				fmt.Printf("  commit: %s\n", payload.GitCommit)
			}
			if payload.BuildDate != "" {
				fmt.Printf("  built:  %s\n", payload.BuildDate)
			}
			return nil
		default:
			return fmt.Errorf("unknown format %q (expected pretty or json)", versionFormat)
		}
	},
}
