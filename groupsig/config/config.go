// Package config persists group/key material to TOML files, the same way
// the teacher's common/key.Group persists a DKG group file: a flat,
// human-editable format meant to be checked into a deployment's config
// directory. Unlike Group, every field here is already a TOML-native
// string, so there's no need for the teacher's GroupTOML mirror-struct
// indirection (that exists there to convert time.Duration and []byte
// fields; nothing here needs converting).
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/fs"
	"github.com/groupsig-go/groupsig/pairing"
)

// GroupConfig is the on-disk description of one group's cryptographic
// material: which scheme it uses and the to-string (base64-of-export, per
// groupsig.ToString) encodings of its group key and (where the scheme has
// them) issuer/opener manager keys.
type GroupConfig struct {
	ID        string `toml:"id"`
	Scheme    string `toml:"scheme"`
	GroupKey  string `toml:"group_key"`
	IssuerKey string `toml:"issuer_key,omitempty"`
	OpenerKey string `toml:"opener_key,omitempty"`
}

// NewGroupConfig builds a GroupConfig from live key objects, rendering each
// via groupsig.ToString rather than hand-rolled hex so every persisted
// field goes through the same to-string contract spec.md §4.3/§6 gives
// every object kind. issuerKey/openerKey may be nil for schemes that lack
// one or the other role (e.g. GL19 has an issuer but no opener).
func NewGroupConfig(id string, gk groupsig.GroupKey, issuerKey, openerKey groupsig.ManagerKey) *GroupConfig {
	c := &GroupConfig{
		ID:       id,
		Scheme:   gk.SchemeCode().String(),
		GroupKey: groupsig.ToString(gk, false),
	}
	if issuerKey != nil {
		c.IssuerKey = groupsig.ToString(issuerKey, false)
	}
	if openerKey != nil {
		c.OpenerKey = groupsig.ToString(openerKey, false)
	}
	return c
}

// GroupKeyBytes decodes the stored group key back to raw export bytes.
func (c *GroupConfig) GroupKeyBytes() ([]byte, error) {
	return pairing.FromBase64(c.GroupKey)
}

// IssuerKeyBytes decodes the stored issuer key, if any.
func (c *GroupConfig) IssuerKeyBytes() ([]byte, error) {
	if c.IssuerKey == "" {
		return nil, nil
	}
	return pairing.FromBase64(c.IssuerKey)
}

// OpenerKeyBytes decodes the stored opener key, if any.
func (c *GroupConfig) OpenerKeyBytes() ([]byte, error) {
	if c.OpenerKey == "" {
		return nil, nil
	}
	return pairing.FromBase64(c.OpenerKey)
}

// Encode renders c as TOML text.
func (c *GroupConfig) Encode() ([]byte, error) {
	var b bytes.Buffer
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return b.Bytes(), nil
}

// Save writes c as a TOML file at path, creating the parent folder with
// restrictive permissions via fs.CreateSecureFolder/fs.CreateSecureFile,
// matching how the teacher's key store lays out its config directory.
func (c *GroupConfig) Save(folder, filename string) error {
	dir := fs.CreateSecureFolder(folder)
	if dir == "" {
		return fmt.Errorf("config: could not secure folder %q", folder)
	}
	full := dir + string(os.PathSeparator) + filename
	fd, err := fs.CreateSecureFile(full)
	if err != nil {
		return fmt.Errorf("config: create file: %w", err)
	}
	defer fd.Close()
	b, err := c.Encode()
	if err != nil {
		return err
	}
	if _, err := fd.Write(b); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}

// LoadGroupConfig reads and decodes a GroupConfig previously written by Save.
func LoadGroupConfig(path string) (*GroupConfig, error) {
	var c GroupConfig
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &c, nil
}
