package model

// NamedProfile pairs an EngineConfig with a user-facing name so it can be
// saved, listed, and re-selected independently of the three built-in
// profiles (FAST/BALANCED/INTENSIVE).
type NamedProfile struct {
	Name      string       `json:"name"`
	IsBuiltIn bool         `json:"is_built_in"`
	Config    EngineConfig `json:"config"`
}
