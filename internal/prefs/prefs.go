// Package prefs persists small string preferences through viper, the same
// mechanism that carries the rest of the configuration.
package prefs

import "github.com/spf13/viper"

// Store is string key-value preference persistence. With an empty path the
// store is in-memory only.
type Store struct {
	v    *viper.Viper
	path string
}

// New wraps a viper instance. When path is non-empty every Set writes the
// whole config back to that file.
func New(v *viper.Viper, path string) *Store {
	if v == nil {
		v = viper.GetViper()
	}
	return &Store{v: v, path: path}
}

func (s *Store) Get(key string) string {
	return s.v.GetString(key)
}

func (s *Store) Set(key, value string) error {
	s.v.Set(key, value)
	if s.path == "" {
		return nil
	}
	return s.v.WriteConfigAs(s.path)
}
