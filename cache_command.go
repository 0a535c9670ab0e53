package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/jukestrip/catalog/cache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the Discogs lookup cache",
	}
	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCachePurgeCommand(ctx))
	return cacheCmd
}

func withCacheStore(ctx *commandContext, fn func(*cache.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry count",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCacheStore(ctx, func(store *cache.Store) error {
				n, err := store.Count(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Cache file: %s\n", store.Path())
				fmt.Fprintf(out, "Entries: %d\n", n)
				return nil
			})
		},
	}
}

func newCachePurgeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Remove all cached lookups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCacheStore(ctx, func(store *cache.Store) error {
				n, err := store.Purge(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Removed %d cached lookups", n)))
				return nil
			})
		},
	}
}
