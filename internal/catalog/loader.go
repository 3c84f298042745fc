package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/droptable"
)

// CaseContent is the parsed content of one case config file: the case,
// its key, and the full catalog entries of every item it can drop.
type CaseContent struct {
	Case  domain.CaseDefinition
	Key   domain.KeyDefinition
	Items []domain.ItemDefinition
}

// caseFile mirrors the JSON layout of configs/cases/*.json.
type caseFile struct {
	Case struct {
		ID          int    `json:"case_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Collection  string `json:"collection"`
		KeyID       int    `json:"key_id"`
		IconURL     string `json:"icon_url"`
		Price       int    `json:"price"`
	} `json:"case"`
	Key struct {
		ID    int    `json:"key_id"`
		Name  string `json:"name"`
		Price int    `json:"price"`
	} `json:"key"`
	DropTable []domain.DropTableEntry `json:"drop_table"`
	Items     []struct {
		ID      int           `json:"item_def_id"`
		Weapon  string        `json:"weapon"`
		Skin    string        `json:"skin"`
		Rarity  domain.Rarity `json:"rarity"`
		Weight  int           `json:"weight"`
		IconURL string        `json:"icon_url"`
	} `json:"items"`
}

// LoadDir parses and validates every *.json case config in a directory.
// A single bad file fails the whole load; partial content never reaches
// the catalog.
func LoadDir(dir string) ([]CaseContent, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no case configs found in %s", dir)
	}

	contents := make([]CaseContent, 0, len(paths))
	for _, path := range paths {
		content, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		contents = append(contents, *content)
	}
	return contents, nil
}

func loadFile(path string) (*CaseContent, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // Paths come from the config dir glob
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFailed, path, err)
	}

	var file caseFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, path, err)
	}

	content, err := file.build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return content, nil
}

// build assembles domain definitions from the raw file and validates
// them: known rarities, a compilable drop table, and a non-empty pool for
// every rarity the table references.
func (f *caseFile) build() (*CaseContent, error) {
	caseDef := domain.CaseDefinition{
		ID:          f.Case.ID,
		Name:        f.Case.Name,
		Description: f.Case.Description,
		Collection:  f.Case.Collection,
		KeyID:       f.Case.KeyID,
		IconURL:     f.Case.IconURL,
		Price:       f.Case.Price,
		DropTable:   f.DropTable,
		Pools:       make(map[domain.Rarity][]domain.PoolEntry),
	}
	if f.Case.Price < 0 || f.Key.Price < 0 {
		return nil, fmt.Errorf("case %d: price must not be negative", f.Case.ID)
	}

	items := make([]domain.ItemDefinition, 0, len(f.Items))
	for _, it := range f.Items {
		if !it.Rarity.Valid() {
			return nil, fmt.Errorf("item %d: unknown rarity %q", it.ID, it.Rarity)
		}
		if it.Weight <= 0 {
			return nil, fmt.Errorf("item %d: weight must be positive", it.ID)
		}
		items = append(items, domain.ItemDefinition{
			ID:         it.ID,
			Name:       it.Weapon + " | " + it.Skin,
			Rarity:     it.Rarity,
			Weapon:     it.Weapon,
			Skin:       it.Skin,
			Collection: f.Case.Collection,
			IconURL:    it.IconURL,
		})
		caseDef.Pools[it.Rarity] = append(caseDef.Pools[it.Rarity], domain.PoolEntry{
			ItemDefID: it.ID,
			Weapon:    it.Weapon,
			Skin:      it.Skin,
			Weight:    it.Weight,
		})
	}

	if err := droptable.Validate(&caseDef); err != nil {
		return nil, err
	}

	return &CaseContent{
		Case:  caseDef,
		Key:   domain.KeyDefinition{ID: f.Key.ID, Name: f.Key.Name, Price: f.Key.Price},
		Items: items,
	}, nil
}
