package store

import (
	"context"
	"encoding/json"
)

// Copy moves every known collection from src to dst in one Update on dst.
// Collections missing from src are left untouched in dst. Each document must
// decode as a JSON array before anything is written.
func Copy(ctx context.Context, dst, src Store) (int, error) {
	docs := make(map[Collection][]byte)
	err := src.View(ctx, func(tx Tx) error {
		for _, name := range All {
			data, err := tx.Get(name)
			if err != nil {
				return err
			}
			if data == nil {
				continue
			}
			// Only documents the destination can load again are copied.
			if _, err := Load[json.RawMessage](tx, name); err != nil {
				return err
			}
			docs[name] = data
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	err = dst.Update(ctx, func(tx Tx) error {
		for _, name := range All {
			if data, ok := docs[name]; ok {
				if err := tx.Put(name, data); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}
