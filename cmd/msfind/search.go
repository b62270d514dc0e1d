package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mr-c/macsyfinder/hit"
	"github.com/mr-c/macsyfinder/hitio"
	"github.com/mr-c/macsyfinder/model"
	"github.com/mr-c/macsyfinder/pipeline"
	"github.com/mr-c/macsyfinder/replicon"
	"github.com/mr-c/macsyfinder/serialize"
	"github.com/mr-c/macsyfinder/system"
)

var (
	searchModelsDir string
	searchIndex     string
	searchTopology  string
	searchHits      string
	searchFormat    string
	searchOut       string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Detect systems on a replicon from a profile-hit stream",
	Long: `search loads every model definition under --models-dir, builds
replicons from --index and --topology, resolves --hits against each
model, and reports the systems the detection core finds.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchModelsDir, "models-dir", "", "Directory of model XML definitions (default: config paths.models_dir)")
	searchCmd.Flags().StringVar(&searchIndex, "index", "", "Replicon FASTA index file")
	searchCmd.Flags().StringVar(&searchTopology, "topology", "", "Replicon topology file")
	searchCmd.Flags().StringVar(&searchHits, "hits", "", "Profile-hit stream file")
	searchCmd.Flags().StringVar(&searchFormat, "format", "text", "Output format (text|json)")
	searchCmd.Flags().StringVar(&searchOut, "out", "", "Output file (default stdout)")
	searchCmd.MarkFlagRequired("index")
	searchCmd.MarkFlagRequired("topology")
	searchCmd.MarkFlagRequired("hits")
}

func runSearch(cmd *cobra.Command, args []string) error {
	modelsDir := searchModelsDir
	if modelsDir == "" {
		modelsDir = cfg.Paths.ModelsDir
	}

	models, err := loadModels(modelsDir)
	if err != nil {
		return fmt.Errorf("load models: %w", err)
	}
	if len(models) == 0 {
		return fmt.Errorf("no model definitions found under %s", modelsDir)
	}

	replicons, err := loadReplicons(searchIndex, searchTopology)
	if err != nil {
		return fmt.Errorf("load replicons: %w", err)
	}

	hits, err := loadHits(searchHits)
	if err != nil {
		return fmt.Errorf("load hits: %w", err)
	}

	weights := cfg.Weights.ToScoreWeights()
	result, err := pipeline.Run(models, replicons, hits, weights)
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	out := os.Stdout
	if searchOut != "" {
		f, err := os.Create(searchOut)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return writeResult(out, result)
}

func loadModels(dir string) ([]*model.Model, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var models []*model.Model
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".xml") {
			continue
		}
		f, err := os.Open(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		m, err := model.ParseXML(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("validate %s: %w", e.Name(), err)
		}
		models = append(models, m)
	}
	return models, nil
}

func loadReplicons(indexPath, topologyPath string) ([]*replicon.Replicon, error) {
	idxFile, err := os.Open(indexPath)
	if err != nil {
		return nil, err
	}
	defer idxFile.Close()
	entries, err := replicon.ParseIndex(idxFile, "")
	if err != nil {
		return nil, err
	}

	topoFile, err := os.Open(topologyPath)
	if err != nil {
		return nil, err
	}
	defer topoFile.Close()
	topologies, err := replicon.ParseTopology(topoFile)
	if err != nil {
		return nil, err
	}

	byName := func(seqID string) string { return seqID }
	return replicon.BuildReplicons(entries, byName, topologies, replicon.Linear), nil
}

func loadHits(path string) ([]*hit.CoreHit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return hitio.ParseHits(f)
}

func writeResult(out *os.File, result *pipeline.Result) error {
	switch searchFormat {
	case "json":
		views := make([]*serialize.JSONView, len(result.Systems))
		for i, s := range result.Systems {
			views[i] = serialize.BuildJSONView(s)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "text":
		tracker := system.NewHitSystemTracker(result.Systems)
		for _, s := range result.Systems {
			fmt.Fprintln(out, serialize.BuildTextView(s, tracker))
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", searchFormat)
	}
}
