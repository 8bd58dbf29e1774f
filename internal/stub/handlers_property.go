package stub

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/propertyplus/propclient/internal/stub/store"
	"github.com/propertyplus/propclient/internal/validate"
	"github.com/propertyplus/propclient/pkg/httpx"
)

// maxVideoBytes caps an uploaded walkthrough video at 50 MB.
const maxVideoBytes = 50 << 20

func (s *Server) handleProperty(w http.ResponseWriter, r *http.Request, user *store.User) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Invalid property id.")
		return
	}
	p, err := s.store.PropertyByID(r.Context(), id)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	saved, err := s.store.IsSaved(r.Context(), user.ID, id)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	writeOK(w, map[string]any{"property": apiProperty(p, saved)})
}

func (s *Server) handleAddProperty(w http.ResponseWriter, r *http.Request, user *store.User) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Malformed request.")
		return
	}

	fields := formValues(r)
	draft := validate.DraftFromFields(fields, validate.AddFields)
	if err := validate.CheckDraft(draft); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	p := propertyFromDraft(draft)
	p.SellerID = user.ID
	if !collectMedia(w, r, p) {
		return
	}

	id, err := s.store.CreateProperty(r.Context(), p)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	writeOK(w, map[string]any{"property_id": id})
}

func (s *Server) handleUpdateProperty(w http.ResponseWriter, r *http.Request, user *store.User) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Malformed request.")
		return
	}
	fields := formValues(r)

	id, err := strconv.ParseInt(fields["property_id"], 10, 64)
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Invalid property id.")
		return
	}
	existing, err := s.store.PropertyByID(r.Context(), id)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	if existing.SellerID != user.ID {
		httpx.WriteFailure(w, http.StatusForbidden, "You can only edit your own listings.")
		return
	}
	if VerifyPassword(fields["password"], user.PasswordHash) != nil {
		httpx.WriteFailure(w, http.StatusUnauthorized, "Incorrect password.")
		return
	}

	draft := validate.DraftFromFields(fields, validate.EditFields)
	if err := validate.CheckDraft(draft); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	p := propertyFromDraft(draft)
	p.ID = id
	p.SellerID = existing.SellerID

	// Media carries over unless explicitly deleted; new uploads append.
	p.Images = existing.Images
	p.Video = existing.Video
	p.FloorPlan = existing.FloorPlan
	if fields["delete_video"] == "true" {
		p.Video = ""
	}
	if fields["delete_floor_plan"] == "true" {
		p.FloorPlan = ""
	}
	if fields["delete_images"] == "true" {
		p.Images = nil
	}
	if !collectMedia(w, r, p) {
		return
	}

	if err := s.store.UpdateProperty(r.Context(), p); err != nil {
		s.storeFailure(w, err)
		return
	}
	httpx.WriteSuccess(w)
}

func (s *Server) handleDeleteProperty(w http.ResponseWriter, r *http.Request, user *store.User) {
	var req struct {
		PropertyID string `json:"property_id"`
		Password   string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	id, err := strconv.ParseInt(req.PropertyID, 10, 64)
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Invalid property id.")
		return
	}
	existing, err := s.store.PropertyByID(r.Context(), id)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	if existing.SellerID != user.ID {
		httpx.WriteFailure(w, http.StatusForbidden, "You can only delete your own listings.")
		return
	}
	if VerifyPassword(req.Password, user.PasswordHash) != nil {
		httpx.WriteFailure(w, http.StatusUnauthorized, "Incorrect password.")
		return
	}
	if err := s.store.DeleteProperty(r.Context(), id); err != nil {
		s.storeFailure(w, err)
		return
	}
	httpx.WriteSuccess(w)
}

func (s *Server) handleToggleSave(w http.ResponseWriter, r *http.Request, user *store.User) {
	id, ok := propertyIDFromBody(w, r)
	if !ok {
		return
	}
	if _, err := s.store.PropertyByID(r.Context(), id); err != nil {
		s.storeFailure(w, err)
		return
	}
	saved, err := s.store.ToggleSave(r.Context(), user.ID, id)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	writeOK(w, map[string]any{"is_saved": saved})
}

func (s *Server) handleExpressInterest(w http.ResponseWriter, r *http.Request, user *store.User) {
	id, ok := propertyIDFromBody(w, r)
	if !ok {
		return
	}
	p, err := s.store.PropertyByID(r.Context(), id)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	if p.SellerID == user.ID {
		httpx.WriteFailure(w, http.StatusBadRequest, "You cannot express interest in your own listing.")
		return
	}
	if err := s.store.CreateLead(r.Context(), p.SellerID, user.ID, id); err != nil {
		s.storeFailure(w, err)
		return
	}
	httpx.WriteSuccess(w)
}

func (s *Server) handleNotificationCount(w http.ResponseWriter, r *http.Request, user *store.User) {
	n, err := s.store.UnreadLeadCount(r.Context(), user.ID)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	writeOK(w, map[string]any{"count": n})
}

func (s *Server) handleMarkNotificationsRead(w http.ResponseWriter, r *http.Request, user *store.User) {
	if err := s.store.MarkLeadsRead(r.Context(), user.ID); err != nil {
		s.storeFailure(w, err)
		return
	}
	httpx.WriteSuccess(w)
}

func (s *Server) handleClearNotifications(w http.ResponseWriter, r *http.Request, user *store.User) {
	if err := s.store.ClearLeads(r.Context(), user.ID); err != nil {
		s.storeFailure(w, err)
		return
	}
	httpx.WriteSuccess(w)
}

func propertyIDFromBody(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var req struct {
		PropertyID string `json:"property_id"`
	}
	if !decodeBody(w, r, &req) {
		return 0, false
	}
	id, err := strconv.ParseInt(req.PropertyID, 10, 64)
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Invalid property id.")
		return 0, false
	}
	return id, true
}

// formValues flattens the parsed multipart value map to first values.
func formValues(r *http.Request) map[string]string {
	fields := make(map[string]string, len(r.MultipartForm.Value))
	for k, vs := range r.MultipartForm.Value {
		if len(vs) > 0 {
			fields[k] = vs[0]
		}
	}
	return fields
}

// collectMedia appends uploaded media names to the listing, rejecting
// oversized videos. It reports false after writing the failure.
func collectMedia(w http.ResponseWriter, r *http.Request, p *store.Property) bool {
	for _, header := range r.MultipartForm.File["images"] {
		p.Images = append(p.Images, header.Filename)
	}
	if video := firstFile(r, "video"); video != nil {
		if video.Size > maxVideoBytes {
			httpx.WriteFailure(w, http.StatusRequestEntityTooLarge, "Video file too large (max 50MB)")
			return false
		}
		p.Video = video.Filename
	}
	if plan := firstFile(r, "floor_plan"); plan != nil {
		p.FloorPlan = plan.Filename
	}
	return true
}

func firstFile(r *http.Request, field string) *multipart.FileHeader {
	if headers := r.MultipartForm.File[field]; len(headers) > 0 {
		return headers[0]
	}
	return nil
}

func propertyFromDraft(d validate.PropertyDraft) *store.Property {
	return &store.Property{
		Title:         d.Title,
		PropertyType:  d.PropertyType,
		Price:         d.Price,
		BuiltUpArea:   d.BuiltUpArea,
		CarpetArea:    d.CarpetArea,
		FloorNo:       d.FloorNo,
		TotalFloors:   d.TotalFloors,
		Furnishing:    d.Furnishing,
		AvailableFrom: d.AvailableFrom,
		Address:       d.Address,
		City:          d.City,
		State:         d.State,
		Pincode:       d.Pincode,
		ContactPhone:  d.ContactPhone,
		Description:   d.Description,
	}
}

func apiProperty(p *store.Property, saved bool) map[string]any {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return map[string]any{
		"id":             p.ID,
		"seller_id":      p.SellerID,
		"title":          p.Title,
		"property_type":  p.PropertyType,
		"price":          p.Price,
		"built_up_area":  p.BuiltUpArea,
		"carpet_area":    p.CarpetArea,
		"floor_no":       p.FloorNo,
		"total_floors":   p.TotalFloors,
		"furnishing":     p.Furnishing,
		"available_from": p.AvailableFrom,
		"address":        p.Address,
		"city":           p.City,
		"state":          p.State,
		"pincode":        p.Pincode,
		"contact_phone":  p.ContactPhone,
		"description":    p.Description,
		"images":         images,
		"video":          p.Video,
		"floor_plan":     p.FloorPlan,
		"created_at":     p.CreatedAt,
		"is_saved":       saved,
	}
}
