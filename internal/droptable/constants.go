package droptable

// ProbabilityEpsilon is the tolerance when checking that a drop table's
// probabilities sum to 1.0. Catalog data is authored by hand, so exact
// float equality is not required.
const ProbabilityEpsilon = 1e-6

// Error context messages for wrapped errors during table compilation
const (
	ErrContextCompileDropTable = "failed to compile drop table"
	ErrContextCompilePool      = "failed to compile rarity pool"
)

// Log messages
const (
	LogMsgTableCompiled = "Drop table compiled"
	LogMsgRolledDrop    = "Rolled case drop"
)

// Log field keys for structured logging
const (
	LogFieldCase   = "case"
	LogFieldRarity = "rarity"
	LogFieldItem   = "item_def_id"
)
