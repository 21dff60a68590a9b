package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mergington/activities/internal/domain/model"
)

// seedActivity mirrors one catalog entry in a seed file.
type seedActivity struct {
	Name            string   `koanf:"name"`
	Description     string   `koanf:"description"`
	Schedule        string   `koanf:"schedule"`
	MaxParticipants int      `koanf:"max_participants"`
	Participants    []string `koanf:"participants"`
}

// LoadCatalog reads an activity catalog from a YAML seed file.
//
// The file carries a top-level activities list:
//
//	activities:
//	  - name: Chess Club
//	    description: Learn strategies and compete in chess tournaments
//	    schedule: Fridays, 3:30 PM - 5:00 PM
//	    max_participants: 12
//	    participants:
//	      - michael@mergington.edu
//
// Context is accepted first to satisfy the project-wide convention; it is
// currently unused.
func LoadCatalog(_ context.Context, path string) ([]model.Activity, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}

	var seed struct {
		Activities []seedActivity `koanf:"activities"`
	}
	if err := k.UnmarshalWithConf("", &seed, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	if len(seed.Activities) == 0 {
		return nil, fmt.Errorf("%w: no activities in %s", ErrInvalidCatalog, path)
	}

	catalog := make([]model.Activity, 0, len(seed.Activities))
	for i, a := range seed.Activities {
		if strings.TrimSpace(a.Name) == "" {
			return nil, fmt.Errorf("%w: activity %d has no name", ErrInvalidCatalog, i)
		}
		if a.MaxParticipants < 1 {
			return nil, fmt.Errorf("%w: activity %q needs a positive max_participants", ErrInvalidCatalog, a.Name)
		}
		catalog = append(catalog, model.Activity{
			Name:            a.Name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    a.Participants,
		})
	}
	return catalog, nil
}
