package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/types"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage candidate profiles in the postgres backend",
}

var profilesImportCmd = &cobra.Command{
	Use:   "import <profiles.json>",
	Short: "Upsert candidate profiles from a JSON array",
	Long:  "Validates every profile in the file before writing any of them, then upserts each one as active.",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilesImport,
}

var profilesDeactivateCmd = &cobra.Command{
	Use:   "deactivate <candidate-id>...",
	Short: "Hide candidate profiles from rankings",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProfilesDeactivate,
}

func init() {
	profilesCmd.AddCommand(profilesImportCmd, profilesDeactivateCmd)
	rootCmd.AddCommand(profilesCmd)
}

func runProfilesImport(cmd *cobra.Command, args []string) error {
	profiles, err := readProfiles(args[0])
	if err != nil {
		return err
	}

	database, err := openDatabase(cmd.Context(), "profiles import")
	if err != nil {
		return err
	}
	defer database.Close()

	for i := range profiles {
		if err := database.UpsertProfile(cmd.Context(), &profiles[i]); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d profiles.\n", len(profiles))
	return nil
}

func runProfilesDeactivate(cmd *cobra.Command, args []string) error {
	database, err := openDatabase(cmd.Context(), "profiles deactivate")
	if err != nil {
		return err
	}
	defer database.Close()

	for _, id := range args {
		if err := database.DeactivateProfile(cmd.Context(), id); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deactivated %d profiles.\n", len(args))
	return nil
}

// readProfiles loads and validates a JSON array of candidate profiles.
func readProfiles(path string) ([]types.CandidateProfile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file %s: %w", path, err)
	}

	var profiles []types.CandidateProfile
	if err := json.Unmarshal(content, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profiles JSON: %w", err)
	}
	for i := range profiles {
		if err := profiles[i].Validate(); err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
	}
	return profiles, nil
}
