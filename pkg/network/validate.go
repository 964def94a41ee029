package network

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dd0wney/cluso-isolate/pkg/validation"
)

// Validate checks the structural invariants of a network and returns every
// violation found, joined. Connectors with an empty SystemID are accepted
// only when the network has no systems.
func Validate(n *Network) error {
	if n == nil {
		return ErrNilNetwork
	}

	// Every later check dereferences entities, so nil entries stop here
	if err := checkNil(n); err != nil {
		return err
	}

	var errs []error
	idx := IndexNetwork(n)

	errs = append(errs, checkUnique(n)...)

	for _, s := range n.Systems {
		if err := validation.Struct(s); err != nil {
			errs = append(errs, fmt.Errorf("%w: system %q: %v", ErrInvalidAttributes, s.ID, err))
		}
		for _, cid := range s.Connectors {
			c, ok := idx.Connector(cid)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: system %q lists connector %q", ErrUnknownReference, s.ID, cid))
				continue
			}
			if c.SystemID != s.ID {
				errs = append(errs, fmt.Errorf("%w: system %q lists connector %q owned by %q", ErrAsymmetricLink, s.ID, cid, c.SystemID))
			}
		}
	}

	for _, c := range n.Connectors {
		errs = append(errs, checkConnector(idx, c, len(n.Systems) > 0)...)
	}

	for _, iface := range n.Interfaces {
		for _, cid := range iface.ConnectorIDs {
			c, ok := idx.Connector(cid)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: interface %q lists connector %q", ErrUnknownReference, iface.ID, cid))
				continue
			}
			if !slices.Contains(c.InterfaceIDs, iface.ID) {
				errs = append(errs, fmt.Errorf("%w: interface %q lists connector %q", ErrAsymmetricLink, iface.ID, cid))
			}
		}
	}

	return errors.Join(errs...)
}

func checkConnector(idx *Index, c *Connector, hasSystems bool) []error {
	var errs []error

	switch {
	case c.SystemID == "" && hasSystems:
		errs = append(errs, fmt.Errorf("%w: connector %q has no owning system", ErrUnknownReference, c.ID))
	case c.SystemID != "":
		s, ok := idx.System(c.SystemID)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: connector %q owned by %q", ErrUnknownReference, c.ID, c.SystemID))
		} else if !slices.Contains(s.Connectors, c.ID) {
			errs = append(errs, fmt.Errorf("%w: connector %q missing from system %q", ErrAsymmetricLink, c.ID, s.ID))
		}
	}

	if len(c.InterfaceIDs) > MaxInterfacesPerConnector {
		errs = append(errs, fmt.Errorf("%w: connector %q has %d", ErrTooManyInterfaces, c.ID, len(c.InterfaceIDs)))
	}

	for _, iid := range c.InterfaceIDs {
		iface, ok := idx.Interface(iid)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: connector %q links interface %q", ErrUnknownReference, c.ID, iid))
			continue
		}
		if !slices.Contains(iface.ConnectorIDs, c.ID) {
			errs = append(errs, fmt.Errorf("%w: connector %q missing from interface %q", ErrAsymmetricLink, c.ID, iid))
		}
	}
	return errs
}

func checkNil(n *Network) error {
	var errs []error
	for i, s := range n.Systems {
		if s == nil {
			errs = append(errs, fmt.Errorf("%w: systems[%d]", ErrNilEntity, i))
		}
	}
	for i, c := range n.Connectors {
		if c == nil {
			errs = append(errs, fmt.Errorf("%w: connectors[%d]", ErrNilEntity, i))
		}
	}
	for i, iface := range n.Interfaces {
		if iface == nil {
			errs = append(errs, fmt.Errorf("%w: interfaces[%d]", ErrNilEntity, i))
		}
	}
	return errors.Join(errs...)
}

func checkUnique(n *Network) []error {
	var errs []error
	seen := make(map[string]bool)
	record := func(kind, id string) {
		key := kind + "/" + id
		if seen[key] {
			errs = append(errs, fmt.Errorf("%w: %s %q", ErrDuplicateID, kind, id))
		}
		seen[key] = true
	}
	for _, s := range n.Systems {
		record("system", s.ID)
	}
	for _, c := range n.Connectors {
		record("connector", c.ID)
	}
	for _, i := range n.Interfaces {
		record("interface", i.ID)
	}
	return errs
}
