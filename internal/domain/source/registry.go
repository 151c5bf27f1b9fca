package source

import "fmt"

// Registry holds the primary and backup adapters. Fallback only ever runs
// from primary to backup.
type Registry struct {
	primary Adapter
	backup  Adapter
}

func NewRegistry(primary, backup Adapter) (*Registry, error) {
	if primary == nil || backup == nil {
		return nil, fmt.Errorf("primary and backup adapters are required")
	}
	if primary.Name() == backup.Name() {
		return nil, fmt.Errorf("primary and backup must differ, both are %s", primary.Name())
	}
	return &Registry{primary: primary, backup: backup}, nil
}

func (r *Registry) Primary() Adapter {
	return r.primary
}

func (r *Registry) Backup() Adapter {
	return r.backup
}

func (r *Registry) Get(name Name) (Adapter, bool) {
	switch name {
	case r.primary.Name():
		return r.primary, true
	case r.backup.Name():
		return r.backup, true
	default:
		return nil, false
	}
}

func (r *Registry) IsPrimary(name Name) bool {
	return r.primary.Name() == name
}

func (r *Registry) Role(name Name) string {
	if r.IsPrimary(name) {
		return AliasPrimary
	}
	return AliasBackup
}

func (r *Registry) All() []Adapter {
	return []Adapter{r.primary, r.backup}
}
