package service

import (
	"context"
	"log"
)

// Fallback display names when a reference cannot be resolved. Untyped or
// missing data degrades to these instead of aborting a whole view.
const (
	UnassignedStaff = "unassigned"
	UnknownMenuItem = "unknown item"
)

// Directory resolves staff and menu-item references to display names, with a
// cache in front of the store. Cache failures fall through to the store;
// store failures fall back to the defaults.
type Directory struct {
	store DirectoryStore
	cache DirectoryCache
}

func NewDirectory(store DirectoryStore, cache DirectoryCache) *Directory {
	return &Directory{store: store, cache: cache}
}

func (d *Directory) StaffName(ctx context.Context, staffID string) string {
	if staffID == "" {
		return UnassignedStaff
	}
	key := ""
	if d.cache != nil {
		key = d.cache.StaffKey(staffID)
	}
	return d.resolve(ctx, key, staffID, d.store.StaffName, UnassignedStaff)
}

func (d *Directory) MenuItemName(ctx context.Context, menuItemID string) string {
	if menuItemID == "" {
		return UnknownMenuItem
	}
	key := ""
	if d.cache != nil {
		key = d.cache.MenuItemKey(menuItemID)
	}
	return d.resolve(ctx, key, menuItemID, d.store.MenuItemName, UnknownMenuItem)
}

func (d *Directory) resolve(ctx context.Context, key, id string,
	lookup func(context.Context, string) (string, error), fallback string) string {

	if d.cache != nil {
		if name, err := d.cache.Get(ctx, key); err != nil {
			log.Printf("Warning: directory cache read failed: %v", err)
		} else if name != "" {
			return name
		}
	}

	resolved, err := lookup(ctx, id)
	if err != nil {
		log.Printf("Warning: directory lookup for %q failed: %v", id, err)
		return fallback
	}
	if resolved == "" {
		return fallback
	}

	if d.cache != nil {
		if err := d.cache.Set(ctx, key, resolved); err != nil {
			log.Printf("Warning: directory cache write failed: %v", err)
		}
	}
	return resolved
}
