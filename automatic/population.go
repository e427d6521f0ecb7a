package automatic

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/domino14/reversi/heuristic"
)

// PopulationFile is the on-disk form of a population: the generation it
// came from and one 16-weight list per genome.
type PopulationFile struct {
	Generation int                `yaml:"generation"`
	Genomes    []heuristic.Genome `yaml:"genomes"`
}

func SavePopulation(path string, pf PopulationFile) error {
	out, err := yaml.Marshal(pf)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

func LoadPopulation(path string) (PopulationFile, error) {
	var pf PopulationFile
	in, err := os.ReadFile(path)
	if err != nil {
		return pf, err
	}
	err = yaml.Unmarshal(in, &pf)
	return pf, err
}
