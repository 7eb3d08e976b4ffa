package service

import "recibo/internal/domain"

// fieldFallback fills string fields that decrypted legacy envelopes may lack,
// so read paths never surface partial objects.
const fieldFallback = "N/A"

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// applyClientDefaults makes every leaf of a decrypted client block total.
func applyClientDefaults(info *domain.ClientInfo) {
	info.Name = stringOr(info.Name, fieldFallback)
	info.Email = stringOr(info.Email, "")
	info.Phone = stringOr(info.Phone, fieldFallback)
	info.Address = stringOr(info.Address, fieldFallback)
}

// applyFreelancerDefaults fills missing issuer fields, preferring the stored
// operator identity when one is configured.
func applyFreelancerDefaults(info *domain.FreelancerInfo, fallback *domain.FreelancerInfo) {
	if fallback != nil {
		if info.Name == "" {
			info.Name = fallback.Name
		}
		if info.Email == "" {
			info.Email = fallback.Email
		}
		if info.Phone == "" {
			info.Phone = fallback.Phone
		}
		if info.Address == "" {
			info.Address = fallback.Address
		}
		if info.Website == "" {
			info.Website = fallback.Website
		}
		if info.TaxID == "" {
			info.TaxID = fallback.TaxID
		}
		if info.CompanyName == "" {
			info.CompanyName = fallback.CompanyName
		}
	}
	info.Name = stringOr(info.Name, "Freelancer")
	info.Email = stringOr(info.Email, "")
	info.Phone = stringOr(info.Phone, fieldFallback)
	info.Address = stringOr(info.Address, fieldFallback)
}

func applyProjectDefaults(details *domain.ProjectDetails) {
	details.Title = stringOr(details.Title, fieldFallback)
	details.Description = stringOr(details.Description, fieldFallback)
	if details.Technologies == nil {
		details.Technologies = []string{}
	}
	if details.Deliverables == nil {
		details.Deliverables = []string{}
	}
}

func applyPaymentDefaults(info *domain.PaymentInfo) {
	info.Currency = stringOr(info.Currency, "USD")
	info.Method = stringOr(info.Method, fieldFallback)
	if info.Status == "" {
		info.Status = domain.PaymentStatusPending
	}
}
