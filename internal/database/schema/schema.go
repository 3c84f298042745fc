package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Profiles: per-guild economy state for one user.
-- The CHECK on coins is the last line of defense; the application uses
-- conditional updates so it should never fire.
CREATE TABLE IF NOT EXISTS profiles (
    user_id VARCHAR(32) NOT NULL,
    guild_id VARCHAR(32) NOT NULL,
    coins INTEGER NOT NULL DEFAULT 0 CHECK (coins >= 0),
    xp BIGINT NOT NULL DEFAULT 0 CHECK (xp >= 0),
    level INTEGER NOT NULL DEFAULT 1,
    cases_opened_today INTEGER NOT NULL DEFAULT 0,
    last_open_day DATE,
    last_daily_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, guild_id)
);

-- Catalog: key definitions
CREATE TABLE IF NOT EXISTS key_defs (
    key_id INTEGER PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    price INTEGER NOT NULL DEFAULT 0
);

-- Catalog: item definitions
CREATE TABLE IF NOT EXISTS item_defs (
    item_def_id INTEGER PRIMARY KEY,
    name VARCHAR(150) NOT NULL,
    rarity VARCHAR(20) NOT NULL,
    weapon VARCHAR(50) NOT NULL,
    skin VARCHAR(100) NOT NULL,
    collection VARCHAR(100),
    icon_url TEXT
);

-- Catalog: case definitions. Drop table and pools are stored as JSONB;
-- they are read once at startup and compiled in memory.
CREATE TABLE IF NOT EXISTS case_defs (
    case_id INTEGER PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    description TEXT,
    collection VARCHAR(100),
    key_id INTEGER NOT NULL REFERENCES key_defs(key_id),
    icon_url TEXT,
    price INTEGER NOT NULL DEFAULT 0,
    drop_table JSONB NOT NULL,
    pools JSONB NOT NULL
);

-- Consumable tokens: one row per unit so a consume can lock a single
-- row with SKIP LOCKED and never double-spend.
CREATE TABLE IF NOT EXISTS tokens (
    token_id BIGSERIAL PRIMARY KEY,
    user_id VARCHAR(32) NOT NULL,
    guild_id VARCHAR(32) NOT NULL,
    kind VARCHAR(8) NOT NULL,
    def_id INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_tokens_holder ON tokens (user_id, guild_id, kind, def_id);

-- Owned item instances
CREATE TABLE IF NOT EXISTS owned_items (
    item_id BIGSERIAL PRIMARY KEY,
    item_def_id INTEGER NOT NULL REFERENCES item_defs(item_def_id),
    owner_id VARCHAR(32) NOT NULL,
    guild_id VARCHAR(32) NOT NULL,
    wear DOUBLE PRECISION NOT NULL DEFAULT 0,
    listed BOOLEAN NOT NULL DEFAULT FALSE,
    locked BOOLEAN NOT NULL DEFAULT FALSE,
    obtained_via VARCHAR(16) NOT NULL DEFAULT 'grant',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_owned_items_owner ON owned_items (owner_id, guild_id);

-- Market listings. State machine: ACTIVE -> SOLD | CANCELLED, enforced
-- by compare-and-set updates on state.
CREATE TABLE IF NOT EXISTS market_listings (
    listing_id BIGSERIAL PRIMARY KEY,
    seller_id VARCHAR(32) NOT NULL,
    guild_id VARCHAR(32) NOT NULL,
    item_id BIGINT NOT NULL REFERENCES owned_items(item_id),
    price INTEGER NOT NULL CHECK (price > 0),
    fee_percent INTEGER NOT NULL DEFAULT 5,
    state VARCHAR(10) NOT NULL DEFAULT 'ACTIVE',
    buyer_id VARCHAR(32),
    sold_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_listings_browse ON market_listings (guild_id, state, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_listings_seller ON market_listings (seller_id, guild_id);

-- Append-only audit ledger. Rows are never updated or deleted.
CREATE TABLE IF NOT EXISTS ledger_entries (
    ledger_id BIGSERIAL PRIMARY KEY,
    user_id VARCHAR(32) NOT NULL,
    guild_id VARCHAR(32) NOT NULL,
    kind VARCHAR(20) NOT NULL,
    amount INTEGER NOT NULL,
    xp_amount INTEGER NOT NULL DEFAULT 0,
    payload JSONB,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_ledger_user ON ledger_entries (user_id, guild_id, created_at DESC);
`
