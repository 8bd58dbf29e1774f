package propertyplus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/propertyplus/propclient/pkg/propsdk"
)

func TestPropertyLifecycle(t *testing.T) {
	client, srv := setupStub(t)
	ctx := context.Background()
	email, username := freshAccount()
	registerUser(t, client, srv, email, username)
	sess := loginUser(t, client, email)

	files := []propsdk.FilePart{
		{Field: "images", Name: "front.jpg", Content: []byte("jpeg-bytes")},
		{Field: "images", Name: "hall.jpg", Content: []byte("jpeg-bytes")},
		{Field: "video", Name: "tour.mp4", Content: []byte("mp4-bytes")},
	}
	id, err := sess.AddProperty(ctx, listingFields(), files)
	require.NoError(t, err)
	require.Positive(t, id)

	p, err := sess.Property(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "2BHK in Andheri West", p.Title)
	require.Equal(t, []string{"front.jpg", "hall.jpg"}, p.Images)
	require.Equal(t, "tour.mp4", p.Video)
	require.Equal(t, 900.0, p.CarpetArea)
	require.False(t, p.Saved)

	// Edit: the form sends edit_-prefixed fields plus the password.
	edit := map[string]string{"password": testPassword}
	for k, v := range listingFields() {
		edit["edit_"+k] = v
	}
	edit["edit_price"] = "7200000"
	require.NoError(t, sess.UpdateProperty(ctx, id, edit, nil))

	p, err = sess.Property(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 7200000.0, p.Price)

	err = sess.DeleteProperty(ctx, id, "wrong-password")
	require.True(t, propsdk.IsRejection(err))
	require.Equal(t, "Incorrect password.", err.Error())

	require.NoError(t, sess.DeleteProperty(ctx, id, testPassword))
	_, err = sess.Property(ctx, id)
	require.True(t, propsdk.IsRejection(err))
}

func TestAddPropertyRejectsInvalidDraft(t *testing.T) {
	client, srv := setupStub(t)
	ctx := context.Background()
	email, username := freshAccount()
	registerUser(t, client, srv, email, username)
	sess := loginUser(t, client, email)

	fields := listingFields()
	fields["carpet_area"] = "1200"
	fields["built_up_area"] = "1000"
	_, err := sess.AddProperty(ctx, fields, nil)
	require.True(t, propsdk.IsRejection(err))
	require.Contains(t, err.Error(), "Built-up area")
}

func TestSaveAndInterest(t *testing.T) {
	client, srv := setupStub(t)
	ctx := context.Background()

	sellerEmail, sellerName := freshAccount()
	registerUser(t, client, srv, sellerEmail, sellerName)
	seller := loginUser(t, client, sellerEmail)

	buyerEmail, buyerName := freshAccount()
	registerUser(t, client, srv, buyerEmail, buyerName)
	buyer := loginUser(t, client, buyerEmail)

	id, err := seller.AddProperty(ctx, listingFields(), nil)
	require.NoError(t, err)

	saved, err := buyer.ToggleSave(ctx, id)
	require.NoError(t, err)
	require.True(t, saved)

	p, err := buyer.Property(ctx, id)
	require.NoError(t, err)
	require.True(t, p.Saved)

	saved, err = buyer.ToggleSave(ctx, id)
	require.NoError(t, err)
	require.False(t, saved)

	// Interest lands as an unread lead on the seller's account.
	require.NoError(t, buyer.ExpressInterest(ctx, id))

	count, err := seller.NotificationCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, seller.MarkNotificationsRead(ctx))
	count, err = seller.NotificationCount(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	require.NoError(t, seller.ClearNotifications(ctx))

	// A seller cannot raise a lead on their own listing.
	err = seller.ExpressInterest(ctx, id)
	require.True(t, propsdk.IsRejection(err))
}

func TestUpdateRequiresOwnership(t *testing.T) {
	client, srv := setupStub(t)
	ctx := context.Background()

	ownerEmail, ownerName := freshAccount()
	registerUser(t, client, srv, ownerEmail, ownerName)
	owner := loginUser(t, client, ownerEmail)

	otherEmail, otherName := freshAccount()
	registerUser(t, client, srv, otherEmail, otherName)
	other := loginUser(t, client, otherEmail)

	id, err := owner.AddProperty(ctx, listingFields(), nil)
	require.NoError(t, err)

	edit := map[string]string{"password": testPassword}
	for k, v := range listingFields() {
		edit["edit_"+k] = v
	}
	err = other.UpdateProperty(ctx, id, edit, nil)
	require.True(t, propsdk.IsRejection(err))
	require.Equal(t, "You can only edit your own listings.", err.Error())
}

func TestLookups(t *testing.T) {
	client, srv := setupStub(t)
	ctx := context.Background()

	cities, err := client.Cities(ctx, "Maharashtra")
	require.NoError(t, err)
	require.Contains(t, cities, "Mumbai")

	cities, err = client.Cities(ctx, "Atlantis")
	require.NoError(t, err)
	require.Empty(t, cities)

	offices, err := client.PincodeLookup(ctx, "400053")
	require.NoError(t, err)
	require.Len(t, offices, 1)
	require.Equal(t, "Andheri West", offices[0].Name)

	offices, err = client.PostOfficeLookup(ctx, "andheri")
	require.NoError(t, err)
	require.Len(t, offices, 2)

	// Suggestions reflect live listings; short queries come back empty.
	email, username := freshAccount()
	registerUser(t, client, srv, email, username)
	sess := loginUser(t, client, email)
	_, err = sess.AddProperty(ctx, listingFields(), nil)
	require.NoError(t, err)

	suggestions, err := client.SearchSuggestions(ctx, "Andheri")
	require.NoError(t, err)
	require.Equal(t, []string{"2BHK in Andheri West"}, suggestions)

	suggestions, err = client.SearchSuggestions(ctx, "A")
	require.NoError(t, err)
	require.Empty(t, suggestions)
}
