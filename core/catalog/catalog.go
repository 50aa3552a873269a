package catalog

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/fluidlab/core"
	"github.com/trezcool/fluidlab/fs"
)

const experimentsFile = "data/experiments.yaml"

var ErrNotFound = core.NewNotFoundError("experiment not found")

// Catalog is the static, read-only list of experiments.
type Catalog struct {
	experiments []Experiment
	byID        map[string]int
}

// New loads the catalog shipped with the binary.
func New() (*Catalog, error) {
	f, err := appfs.FS.Open(experimentsFile)
	if err != nil {
		return nil, errors.Wrap(err, "opening experiments file")
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Load decodes a YAML list of experiments.
func Load(r io.Reader) (*Catalog, error) {
	var exps []Experiment
	if err := yaml.NewDecoder(r).Decode(&exps); err != nil {
		return nil, errors.Wrap(err, "decoding experiments")
	}

	c := &Catalog{
		experiments: make([]Experiment, 0, len(exps)),
		byID:        make(map[string]int, len(exps)),
	}
	for i, exp := range exps {
		exp.ID = core.CleanString(exp.ID, true /* lower */)
		if exp.ID == "" || core.CleanString(exp.Title) == "" {
			return nil, errors.Errorf("experiment #%d: id and title are required", i)
		}
		if _, dup := c.byID[exp.ID]; dup {
			return nil, errors.Errorf("experiment %q declared twice", exp.ID)
		}
		c.byID[exp.ID] = len(c.experiments)
		c.experiments = append(c.experiments, exp)
	}
	return c, nil
}

func (c *Catalog) List() []Experiment {
	exps := make([]Experiment, 0, len(c.experiments))
	for _, exp := range c.experiments {
		exps = append(exps, exp.clone())
	}
	return exps
}

func (c *Catalog) Get(id string) (Experiment, error) {
	idx, ok := c.byID[core.CleanString(id, true /* lower */)]
	if !ok {
		return Experiment{}, ErrNotFound
	}
	return c.experiments[idx].clone(), nil
}

func (c *Catalog) Exists(id string) bool {
	_, ok := c.byID[core.CleanString(id, true /* lower */)]
	return ok
}
