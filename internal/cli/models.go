package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/HumanizePro/internal/ai"
)

var modelsTimeout time.Duration

// modelEntry is one row of `models -o json`
type modelEntry struct {
	ai.Model
	Default bool `json:"default"`
}

func newModelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the models the configured provider offers",
		Long: `List the models available from the configured provider. The model
requests will use is marked with *.

Examples:
  humanizepro models
  humanizepro models -o json
  HUMANIZEPRO_AI_PROVIDER=ollama humanizepro models`,
		Args: cobra.NoArgs,
		RunE: runModels,
	}

	cmd.Flags().DurationVar(&modelsTimeout, "timeout", 30*time.Second, "deadline for the listing request")

	return cmd
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	provider, err := createAIProvider(cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	lister, ok := provider.(ai.ModelLister)
	if !ok {
		return fmt.Errorf("provider %s cannot list models", provider.Name())
	}

	ctx, cancel := commandContext(modelsTimeout)
	defer cancel()

	models, err := lister.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list %s models: %w", provider.Name(), err)
	}
	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })

	current := modelName(cfg, provider)
	out := cmd.OutOrStdout()

	if strings.EqualFold(getOutputFormat(), "json") {
		entries := make([]modelEntry, 0, len(models))
		for _, m := range models {
			entries = append(entries, modelEntry{Model: m, Default: m.ID == current})
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	fmt.Fprintf(out, "%s models (%d):\n", provider.Name(), len(models))
	for _, m := range models {
		marker := " "
		if m.ID == current {
			marker = "*"
		}
		line := marker + " " + m.ID
		if m.Name != "" && m.Name != m.ID {
			line += "  (" + m.Name + ")"
		}
		fmt.Fprintln(out, line)
	}

	registry, err := providerRegistry()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nProviders: %s\n", strings.Join(registry.List(), ", "))
	return nil
}
