package propsdk

import (
	"context"
	"strconv"
)

// Property fetches one listing by id.
func (s *Session) Property(ctx context.Context, id int64) (*Property, error) {
	var out struct {
		Property Property `json:"property"`
	}
	path := "/api/property/" + strconv.FormatInt(id, 10)
	if err := s.client.getJSON(ctx, path, &out, s.token); err != nil {
		return nil, err
	}
	return &out.Property, nil
}

// AddProperty submits a new listing with its staged media in one multipart
// request and returns the new listing's id.
func (s *Session) AddProperty(ctx context.Context, fields map[string]string, files []FilePart) (int64, error) {
	var out struct {
		PropertyID int64 `json:"property_id"`
	}
	if err := s.client.postMultipart(ctx, "/property/add", fields, files, &out, s.token); err != nil {
		return 0, err
	}
	return out.PropertyID, nil
}

// UpdateProperty submits edited listing fields, any newly staged media and
// the media-delete flags. The backend re-verifies the account password
// carried in the fields.
func (s *Session) UpdateProperty(ctx context.Context, id int64, fields map[string]string, files []FilePart) error {
	merged := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["property_id"] = strconv.FormatInt(id, 10)
	return s.client.postMultipart(ctx, "/api/property/update", merged, files, nil, s.token)
}

// DeleteProperty removes a listing after password re-verification.
func (s *Session) DeleteProperty(ctx context.Context, id int64, password string) error {
	payload := map[string]string{
		"property_id": strconv.FormatInt(id, 10),
		"password":    password,
	}
	return s.client.postJSON(ctx, "/api/property/delete", payload, nil, s.token)
}

// ToggleSave flips the saved flag on a listing and returns the new state.
func (s *Session) ToggleSave(ctx context.Context, id int64) (saved bool, err error) {
	var out struct {
		Saved bool `json:"is_saved"`
	}
	payload := map[string]string{"property_id": strconv.FormatInt(id, 10)}
	if err := s.client.postJSON(ctx, "/api/property/save", payload, &out, s.token); err != nil {
		return false, err
	}
	return out.Saved, nil
}

// ExpressInterest sends the seller an interest lead for a listing.
func (s *Session) ExpressInterest(ctx context.Context, id int64) error {
	payload := map[string]string{"property_id": strconv.FormatInt(id, 10)}
	return s.client.postJSON(ctx, "/api/property/interest", payload, nil, s.token)
}
