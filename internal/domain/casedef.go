package domain

// DropTableEntry is one (rarity, probability) pair of a case's drop table.
type DropTableEntry struct {
	Rarity      Rarity  `json:"rarity"`
	Probability float64 `json:"probability"`
}

// PoolEntry is one weighted catalog item inside a rarity pool.
type PoolEntry struct {
	ItemDefID int    `json:"item_def_id"`
	Weapon    string `json:"weapon"`
	Skin      string `json:"skin"`
	Weight    int    `json:"weight"`
}

// CaseDefinition describes one openable case type: its drop table and
// the weighted item pool for every rarity the table references.
// Loaded once at startup and treated as read-only afterwards.
type CaseDefinition struct {
	ID          int                    `json:"case_id" db:"case_id"`
	Name        string                 `json:"name" db:"name"`
	Description string                 `json:"description" db:"description"`
	Collection  string                 `json:"collection" db:"collection"`
	KeyID       int                    `json:"key_id" db:"key_id"`
	IconURL     string                 `json:"icon_url,omitempty" db:"icon_url"`
	Price       int                    `json:"price" db:"price"`
	DropTable   []DropTableEntry       `json:"drop_table"`
	Pools       map[Rarity][]PoolEntry `json:"pools"`
}

// KeyDefinition describes a key type that unlocks one or more cases.
// Price zero means the key is not sold in the shop.
type KeyDefinition struct {
	ID    int    `json:"key_id" db:"key_id"`
	Name  string `json:"name" db:"name"`
	Price int    `json:"price" db:"price"`
}
