package stub

import (
	"net/http"
	"strings"

	"github.com/propertyplus/propclient/pkg/httpx"
)

// stateCities is the static state-to-cities directory the signup and
// listing forms draw from.
var stateCities = map[string][]string{
	"Maharashtra": {"Mumbai", "Pune", "Nagpur", "Nashik", "Thane"},
	"Karnataka":   {"Bengaluru", "Mysuru", "Mangaluru", "Hubballi"},
	"Delhi":       {"New Delhi", "Dwarka", "Rohini", "Saket"},
	"Tamil Nadu":  {"Chennai", "Coimbatore", "Madurai", "Salem"},
	"Telangana":   {"Hyderabad", "Warangal", "Nizamabad"},
	"Gujarat":     {"Ahmedabad", "Surat", "Vadodara", "Rajkot"},
	"West Bengal": {"Kolkata", "Howrah", "Durgapur", "Siliguri"},
}

// postOffice mirrors the public postal API's capitalized keys.
type postOffice struct {
	Name     string `json:"Name"`
	District string `json:"District"`
	State    string `json:"State"`
	Pincode  string `json:"Pincode"`
}

type postalResult struct {
	Status      string       `json:"Status"`
	PostOffices []postOffice `json:"PostOffice"`
}

var postOffices = []postOffice{
	{Name: "Andheri West", District: "Mumbai", State: "Maharashtra", Pincode: "400053"},
	{Name: "Andheri East", District: "Mumbai", State: "Maharashtra", Pincode: "400069"},
	{Name: "Shivajinagar", District: "Pune", State: "Maharashtra", Pincode: "411005"},
	{Name: "Koramangala", District: "Bengaluru", State: "Karnataka", Pincode: "560034"},
	{Name: "Connaught Place", District: "New Delhi", State: "Delhi", Pincode: "110001"},
	{Name: "T Nagar", District: "Chennai", State: "Tamil Nadu", Pincode: "600017"},
}

// handleCities answers with a bare JSON array; an unknown state yields an
// empty list, not an error.
func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	cities := stateCities[r.PathValue("state")]
	if cities == nil {
		cities = []string{}
	}
	httpx.WriteJSON(w, http.StatusOK, cities)
}

// handleSearchSuggestions answers with a bare JSON array of matching
// listing titles. Queries under two characters come back empty.
func (s *Server) handleSearchSuggestions(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len([]rune(q)) < 2 {
		httpx.WriteJSON(w, http.StatusOK, []string{})
		return
	}
	titles, err := s.store.SearchTitles(r.Context(), q, 8)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	if titles == nil {
		titles = []string{}
	}
	httpx.WriteJSON(w, http.StatusOK, titles)
}

func (s *Server) handlePincodeLookup(w http.ResponseWriter, r *http.Request) {
	pincode := r.PathValue("pincode")
	var matches []postOffice
	for _, po := range postOffices {
		if po.Pincode == pincode {
			matches = append(matches, po)
		}
	}
	writePostal(w, matches)
}

func (s *Server) handlePostOfficeLookup(w http.ResponseWriter, r *http.Request) {
	term := strings.ToLower(r.PathValue("term"))
	var matches []postOffice
	for _, po := range postOffices {
		if strings.Contains(strings.ToLower(po.Name), term) {
			matches = append(matches, po)
		}
	}
	writePostal(w, matches)
}

func writePostal(w http.ResponseWriter, matches []postOffice) {
	result := postalResult{Status: "Success", PostOffices: matches}
	if len(matches) == 0 {
		result = postalResult{Status: "Error"}
	}
	httpx.WriteJSON(w, http.StatusOK, []postalResult{result})
}
