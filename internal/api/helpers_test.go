package api

import "marketplace-admin/internal/models"

func testPartner() models.BusinessPartner {
	return models.BusinessPartner{
		ID:              12,
		BusinessName:    "Acme Tents",
		ProprietorName:  "A. Sharma",
		PhoneNumber:     "9876543210",
		ServiceProvided: "Tent House",
		IsApproved:      false,
		SubCategories:   []string{"weddings"},
		MoreDetails:     models.MoreDetails{{Name: "Hours", Detail: "9-5"}},
	}
}
