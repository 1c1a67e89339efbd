package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sandevgo/heroguide/internal/config"
	"github.com/sandevgo/heroguide/internal/core"
	"github.com/sandevgo/heroguide/internal/service/knowledge"
	"github.com/sandevgo/heroguide/internal/storage/jsonfile"
	"github.com/sandevgo/heroguide/pkg/log"
	"github.com/spf13/cobra"
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Inspect or update the hero table",
}

var kbImportCmd = &cobra.Command{
	Use:          "import <file>",
	Short:        "Merge heroes from a JSON file into the configured store",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		incoming, err := jsonfile.Decode(data)
		if err != nil {
			return err
		}

		return withStore(ctx, func(store core.KnowledgeStore) error {
			current, err := store.Load(ctx)
			if err != nil {
				return err
			}
			merged := mergeHeroes(current, incoming)
			if err := store.Save(ctx, merged); err != nil {
				return err
			}
			log.FromCtx(ctx).Info().
				Int("imported", len(incoming)).
				Int("total", len(merged)).
				Msg("hero table updated")
			return nil
		})
	},
}

var kbShowCmd = &cobra.Command{
	Use:          "show <hero>",
	Short:        "Print the record the bot would answer with",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		return withStore(ctx, func(store core.KnowledgeStore) error {
			heroes, err := store.Load(ctx)
			if err != nil {
				return err
			}
			hero, ok := knowledge.NewBase(heroes).Lookup(args[0])
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not found\n", knowledge.Normalize(args[0]))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), knowledge.Format(hero))
			return nil
		})
	},
}

// mergeHeroes overlays incoming records on current ones. Names that normalize
// to the same hero replace each other; a stored spelling such as "X.Borg"
// survives an import that only has the normalized form.
func mergeHeroes(current, incoming map[string]core.Hero) map[string]core.Hero {
	out := make(map[string]core.Hero, len(current)+len(incoming))
	byKey := make(map[string]string, len(current)+len(incoming))

	put := func(name string, hero core.Hero) {
		key := knowledge.Normalize(name)
		if key == "" {
			return
		}
		display := knowledge.DisplayName(name)
		if prev, ok := byKey[key]; ok {
			delete(out, prev)
			if display == key {
				display = prev
			}
		}
		hero.Name = display
		out[display] = hero
		byKey[key] = display
	}

	for name, hero := range current {
		put(name, hero)
	}
	for name, hero := range incoming {
		put(name, hero)
	}
	return out
}

func withStore(ctx context.Context, fn func(core.KnowledgeStore) error) error {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return err
	}
	store, closeStore, err := initKnowledgeStore(ctx, config.NewAppConfig(ctx))
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}
	return fn(store)
}

func init() {
	kbCmd.AddCommand(kbImportCmd, kbShowCmd)
	rootCmd.AddCommand(kbCmd)
}
