// path: database/seed.go
package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/kevinke3/loket/models"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// SampleData is the content of the embedded seed file.
type SampleData struct {
	Missing []models.MissingPerson `yaml:"missing_persons"`
	Found   []models.FoundPerson   `yaml:"found_persons"`
}

// Samples parses the embedded seed file.
func Samples() (SampleData, error) {
	var d SampleData
	if err := yaml.Unmarshal(seedYAML, &d); err != nil {
		return SampleData{}, fmt.Errorf("parse seed data: %w", err)
	}
	return d, nil
}

// Seed writes the sample records into every collection that does not exist
// yet, or into both when force is set. It returns the collections written.
func Seed(ctx context.Context, s Store, force bool, logger *zap.Logger) ([]Collection, error) {
	samples, err := Samples()
	if err != nil {
		return nil, err
	}

	var seeded []Collection
	for _, c := range []Collection{MissingPersons, FoundPersons} {
		if !force {
			exists, err := s.Exists(ctx, c)
			if err != nil {
				return seeded, err
			}
			if exists {
				logger.Debug("seed: collection present, skipping", zap.String("collection", string(c)))
				continue
			}
		}

		switch c {
		case MissingPersons:
			err = s.SaveMissing(ctx, samples.Missing)
		case FoundPersons:
			err = s.SaveFound(ctx, samples.Found)
		}
		if err != nil {
			return seeded, fmt.Errorf("seed %s: %w", c, err)
		}
		logger.Info("seed: wrote sample records", zap.String("collection", string(c)))
		seeded = append(seeded, c)
	}
	return seeded, nil
}
