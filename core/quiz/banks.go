package quiz

import (
	"io"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/fluidlab/core"
	"github.com/trezcool/fluidlab/fs"
)

const banksFile = "data/quizzes.yaml"

var ErrBankNotFound = core.NewNotFoundError("quiz not found")

// Banks is the read-only set of question banks, keyed by experiment.
type Banks struct {
	banks map[string]Bank
}

// LoadBanks loads the banks shipped with the binary.
func LoadBanks() (*Banks, error) {
	f, err := appfs.FS.Open(banksFile)
	if err != nil {
		return nil, errors.Wrap(err, "opening quiz banks")
	}
	defer func() { _ = f.Close() }()
	return DecodeBanks(f)
}

// DecodeBanks decodes and checks a YAML list of banks.
func DecodeBanks(r io.Reader) (*Banks, error) {
	var list []Bank
	if err := yaml.NewDecoder(r).Decode(&list); err != nil {
		return nil, errors.Wrap(err, "decoding quiz banks")
	}

	b := &Banks{banks: make(map[string]Bank, len(list))}
	for _, bank := range list {
		bank.ExperimentID = core.CleanString(bank.ExperimentID, true /* lower */)
		if err := CheckBank(bank); err != nil {
			return nil, err
		}
		if _, dup := b.banks[bank.ExperimentID]; dup {
			return nil, errors.Errorf("quiz %q declared twice", bank.ExperimentID)
		}
		b.banks[bank.ExperimentID] = bank
	}
	return b, nil
}

// CheckBank reports the first malformed question of bank.
func CheckBank(bank Bank) error {
	if bank.ExperimentID == "" {
		return errors.New("quiz bank without experiment_id")
	}
	if len(bank.Questions) == 0 {
		return errors.Errorf("quiz %q has no questions", bank.ExperimentID)
	}
	seen := make(map[string]bool, len(bank.Questions))
	for i, q := range bank.Questions {
		if q.ID == "" {
			return errors.Errorf("quiz %q: question #%d has no id", bank.ExperimentID, i)
		}
		if seen[q.ID] {
			return errors.Errorf("quiz %q: question %q declared twice", bank.ExperimentID, q.ID)
		}
		seen[q.ID] = true
		if len(q.Options) < 2 {
			return errors.Errorf("quiz %q: question %q needs at least 2 options", bank.ExperimentID, q.ID)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return errors.Errorf(
				"quiz %q: question %q correct answer %d out of bounds [0, %d)",
				bank.ExperimentID, q.ID, q.CorrectAnswer, len(q.Options),
			)
		}
		if !q.Category.Valid() {
			return errors.Errorf("quiz %q: question %q has unknown category %q", bank.ExperimentID, q.ID, q.Category)
		}
	}
	return nil
}

func (b *Banks) Get(experimentID string) (Bank, error) {
	bank, ok := b.banks[core.CleanString(experimentID, true /* lower */)]
	if !ok {
		return Bank{}, ErrBankNotFound
	}
	return bank.clone(), nil
}

// List returns the banks sorted by experiment id.
func (b *Banks) List() []Bank {
	banks := make([]Bank, 0, len(b.banks))
	for _, bank := range b.banks {
		banks = append(banks, bank.clone())
	}
	sort.Slice(banks, func(i, j int) bool { return banks[i].ExperimentID < banks[j].ExperimentID })
	return banks
}
