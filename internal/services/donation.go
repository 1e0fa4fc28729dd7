package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/foodbridge-app/foodbridge-backend/internal/media"
	"github.com/foodbridge-app/foodbridge-backend/internal/models"
	"github.com/foodbridge-app/foodbridge-backend/internal/notify"
	"github.com/foodbridge-app/foodbridge-backend/internal/store"
)

// MaxDonationImages caps how many images one listing may carry.
const MaxDonationImages = 5

// DonationService orchestrates listing creation (media intake, persistence,
// SMS fan-out) and retrieval.
type DonationService struct {
	donations store.DonationStore
	media     media.Store
	sms       notify.SMSSender
}

func NewDonationService(donations store.DonationStore, mediaStore media.Store, sms notify.SMSSender) *DonationService {
	return &DonationService{donations: donations, media: mediaStore, sms: sms}
}

// CreateDonationInput is the validated multipart payload of a new listing.
type CreateDonationInput struct {
	Title           string
	Description     string
	FoodType        string
	PreparationTime string
	Quantity        int
	Lat             float64
	Lng             float64
	DonorEmail      string
	Images          []*multipart.FileHeader
}

// Create validates the listing, stores its images, persists the record and
// fires the best-effort SMS alert. The SMS failing never fails the create.
func (s *DonationService) Create(ctx context.Context, in CreateDonationInput) (*models.Donation, error) {
	if in.Title == "" || in.Description == "" || in.FoodType == "" || in.PreparationTime == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}
	if in.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if len(in.Images) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", ErrInvalidInput)
	}
	if len(in.Images) > MaxDonationImages {
		return nil, fmt.Errorf("%w: at most %d images are allowed", ErrInvalidInput, MaxDonationImages)
	}

	imageURLs := make([]string, 0, len(in.Images))
	for _, header := range in.Images {
		url, err := s.media.Save(ctx, header)
		if err != nil {
			return nil, fmt.Errorf("failed to store image %q: %w", header.Filename, err)
		}
		imageURLs = append(imageURLs, url)
	}

	donation := &models.Donation{
		Title:           in.Title,
		Description:     in.Description,
		FoodType:        in.FoodType,
		PreparationTime: in.PreparationTime,
		Quantity:        in.Quantity,
		Location:        models.Location{Lat: in.Lat, Lng: in.Lng},
		Images:          imageURLs,
		DonorEmail:      NormalizeEmail(in.DonorEmail),
		Status:          models.DonationAvailable,
	}

	if err := s.donations.Insert(ctx, donation); err != nil {
		return nil, err
	}

	alert := fmt.Sprintf("New Donation Available!\nTitle: %s\nFood Type: %s\nQuantity: %d\nPickup Location: (%g, %g)\nContact: %s",
		donation.Title, donation.FoodType, donation.Quantity, donation.Location.Lat, donation.Location.Lng, donation.DonorEmail)
	if err := s.sms.Send(alert); err != nil {
		log.Printf("failed to send new-donation SMS: %v", err)
	}

	return donation, nil
}

// FetchAll returns every listing in insertion order; filtering happens
// client-side.
func (s *DonationService) FetchAll(ctx context.Context) ([]models.Donation, error) {
	return s.donations.FindAll(ctx)
}

// FetchOne looks a listing up by id.
func (s *DonationService) FetchOne(ctx context.Context, id string) (*models.Donation, error) {
	return s.donations.FindByID(ctx, id)
}
