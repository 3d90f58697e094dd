// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citescholar/internal/secrets"
	"github.com/pdiddy/citescholar/pkg/types"
)

// loadConfig merges flags, environment, config file, and secrets into a
// run configuration. Flags win over the environment, which wins over the
// config file; secrets fill in API credentials that are still unset.
func loadConfig(cmd *cobra.Command) (types.Config, error) {
	style, err := types.ParseCitationStyle(viper.GetString("style"))
	if err != nil {
		return types.Config{}, err
	}
	noSave, _ := cmd.Flags().GetBool("no-save")

	return types.Config{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("http.timeout"),
				UserAgent: viper.GetString("http.user_agent"),
			},
			Provider:              types.ProviderName(viper.GetString("search.provider")),
			PageSize:              viper.GetInt("search.page_size"),
			OpenAlexEmail:         loadedSecrets.Get(secrets.OpenAlexEmail, viper.GetString("openalex.email")),
			SemanticScholarAPIKey: loadedSecrets.Get(secrets.SemanticScholarAPIKey, viper.GetString("semantic_scholar.api_key")),
		},
		Store: types.StoreConfig{
			Path:     databasePath(cmd),
			Disabled: noSave,
		},
		Style: style,
	}, nil
}

// databasePath resolves the database file for cmd. A --sqlite3 flag set on
// cmd itself wins; otherwise the bound store.path setting applies, which
// falls back to types.DefaultDatabasePath.
func databasePath(cmd *cobra.Command) string {
	if f := cmd.Flags().Lookup("sqlite3"); f != nil && f.Changed {
		return f.Value.String()
	}
	if p := viper.GetString("store.path"); p != "" {
		return p
	}
	return types.DefaultDatabasePath
}
