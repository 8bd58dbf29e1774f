package store

import (
	"context"
	"database/sql"
)

// Property is a listing row with its media filenames attached.
type Property struct {
	ID            int64
	SellerID      int64
	Title         string
	PropertyType  string
	Price         float64
	BuiltUpArea   float64
	CarpetArea    float64
	FloorNo       int
	TotalFloors   int
	Furnishing    string
	AvailableFrom string
	Address       string
	City          string
	State         string
	Pincode       string
	ContactPhone  string
	Description   string
	CreatedAt     string
	Images        []string
	Video         string
	FloorPlan     string
}

const propertyColumns = `id, seller_id, title, property_type, price,
	built_up_area, carpet_area, floor_no, total_floors, furnishing,
	available_from, address, city, state, pincode, contact_phone,
	description, created_at`

func scanProperty(row interface{ Scan(...any) error }) (*Property, error) {
	var p Property
	err := row.Scan(
		&p.ID, &p.SellerID, &p.Title, &p.PropertyType, &p.Price,
		&p.BuiltUpArea, &p.CarpetArea, &p.FloorNo, &p.TotalFloors,
		&p.Furnishing, &p.AvailableFrom, &p.Address, &p.City, &p.State,
		&p.Pincode, &p.ContactPhone, &p.Description, &p.CreatedAt,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

// CreateProperty inserts a listing and its media rows in one transaction
// and returns the new listing id.
func (s *Store) CreateProperty(ctx context.Context, p *Property) (int64, error) {
	var id int64
	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO properties (seller_id, title, property_type, price,
				built_up_area, carpet_area, floor_no, total_floors, furnishing,
				available_from, address, city, state, pincode, contact_phone,
				description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.SellerID, p.Title, p.PropertyType, p.Price, p.BuiltUpArea,
			p.CarpetArea, p.FloorNo, p.TotalFloors, p.Furnishing,
			p.AvailableFrom, p.Address, p.City, p.State, p.Pincode,
			p.ContactPhone, p.Description,
		)
		if err != nil {
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		return insertMedia(ctx, tx, id, p)
	})
	return id, err
}

// UpdateProperty rewrites a listing's fields and replaces its media.
func (s *Store) UpdateProperty(ctx context.Context, p *Property) error {
	return s.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE properties SET title = ?, property_type = ?, price = ?,
				built_up_area = ?, carpet_area = ?, floor_no = ?,
				total_floors = ?, furnishing = ?, available_from = ?,
				address = ?, city = ?, state = ?, pincode = ?,
				contact_phone = ?, description = ?
			WHERE id = ?`,
			p.Title, p.PropertyType, p.Price, p.BuiltUpArea, p.CarpetArea,
			p.FloorNo, p.TotalFloors, p.Furnishing, p.AvailableFrom,
			p.Address, p.City, p.State, p.Pincode, p.ContactPhone,
			p.Description, p.ID,
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM property_media WHERE property_id = ?`, p.ID); err != nil {
			return err
		}
		return insertMedia(ctx, tx, p.ID, p)
	})
}

func insertMedia(ctx context.Context, tx *sql.Tx, id int64, p *Property) error {
	add := func(kind, filename string) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO property_media (property_id, kind, filename)
			VALUES (?, ?, ?)`, id, kind, filename)
		return err
	}
	for _, img := range p.Images {
		if err := add("image", img); err != nil {
			return err
		}
	}
	if p.Video != "" {
		if err := add("video", p.Video); err != nil {
			return err
		}
	}
	if p.FloorPlan != "" {
		if err := add("floor_plan", p.FloorPlan); err != nil {
			return err
		}
	}
	return nil
}

// PropertyByID fetches one listing with its media.
func (s *Store) PropertyByID(ctx context.Context, id int64) (*Property, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id)
	p, err := scanProperty(row)
	if err != nil {
		return nil, err
	}
	if err := s.attachMedia(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// PropertiesBySeller lists an account's own listings, newest first.
func (s *Store) PropertiesBySeller(ctx context.Context, sellerID int64) ([]*Property, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE seller_id = ? ORDER BY id DESC`,
		sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range out {
		if err := s.attachMedia(ctx, p); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SearchTitles returns distinct listing titles matching the query, for
// live-search suggestions.
func (s *Store) SearchTitles(ctx context.Context, q string, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT title FROM properties
		WHERE title LIKE '%' || ? || '%' ORDER BY title LIMIT ?`, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

// DeleteProperty removes a listing; media, saves and leads cascade.
func (s *Store) DeleteProperty(ctx context.Context, id int64) error {
	return s.execOne(ctx, `DELETE FROM properties WHERE id = ?`, id)
}

func (s *Store) attachMedia(ctx context.Context, p *Property) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, filename FROM property_media WHERE property_id = ? ORDER BY id`,
		p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var kind, filename string
		if err := rows.Scan(&kind, &filename); err != nil {
			return err
		}
		switch kind {
		case "image":
			p.Images = append(p.Images, filename)
		case "video":
			p.Video = filename
		case "floor_plan":
			p.FloorPlan = filename
		}
	}
	return rows.Err()
}
