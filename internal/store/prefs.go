package store

import "velora/internal/persist"

// Prefs persists the session's language and currency codes. These are plain
// strings, not JSON documents, matching how the UI kept them.
type Prefs struct {
	kv  persist.KV
	sid string
}

// Language returns the persisted code or "" when none was chosen yet.
func (p *Prefs) Language() string {
	v, _, _ := p.kv.Get(p.sid, keyLang)
	return v
}

func (p *Prefs) SetLanguage(code string) error {
	return p.kv.Set(p.sid, keyLang, code)
}

func (p *Prefs) Currency() string {
	v, _, _ := p.kv.Get(p.sid, keyCurrency)
	return v
}

func (p *Prefs) SetCurrency(code string) error {
	return p.kv.Set(p.sid, keyCurrency, code)
}
