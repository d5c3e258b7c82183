package plan

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlPlan is the on-disk representation of a plan.
type yamlPlan struct {
	Name         string           `yaml:"name"`
	Limits       map[string]int64 `yaml:"limits"`
	Capabilities []string         `yaml:"capabilities"`
}

// yamlSource loads the catalogue from a YAML file of the form:
//
//	plans:
//	  free:
//	    name: Free
//	    limits:
//	      exports: 0
//	    capabilities: []
type yamlSource struct {
	path string
}

// NewYAMLSource returns a Source that reads plans from the given file path.
// The file is read on every Load call, so a catalogue reload is a service
// restart away without a rebuild.
func NewYAMLSource(path string) Source {
	return &yamlSource{path: path}
}

func (s *yamlSource) Load(_ context.Context) (map[Tier]Plan, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var doc struct {
		Plans map[string]yamlPlan `yaml:"plans"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	if len(doc.Plans) == 0 {
		return nil, errors.Join(ErrFailedToLoadPlans, fmt.Errorf("no plans in %s", s.path))
	}

	plans := make(map[Tier]Plan, len(doc.Plans))
	for id, yp := range doc.Plans {
		tier := Tier(id)

		limits := make(map[Feature]int64, len(yp.Limits))
		for f, l := range yp.Limits {
			limits[Feature(f)] = l
		}

		caps := make([]Feature, 0, len(yp.Capabilities))
		for _, c := range yp.Capabilities {
			caps = append(caps, Feature(c))
		}

		plans[tier] = Plan{
			Tier:         tier,
			Name:         yp.Name,
			Limits:       limits,
			Capabilities: caps,
		}
	}

	return plans, nil
}
