package catalog

// gujaratDistricts lists the districts a customer can request.
var gujaratDistricts = []string{
	"Ahmedabad", "Surat", "Vadodara", "Rajkot", "Bhavnagar", "Jamnagar",
	"Anand", "Gandhinagar", "Patan", "Mehsana", "Banaskantha", "Sabarkantha",
	"Aravalli", "Mahisagar", "Dahod", "Panchmahal", "Chhota Udaipur",
	"Narmada", "Bharuch", "Tapi", "Dang", "Navsari", "Valsad", "Amreli",
	"Botad", "Surendranagar", "Morbi", "Devbhoomi Dwarka", "Porbandar",
	"Junagadh", "Gir Somnath", "Kheda",
}

// builtinCatalog returns the attribute definitions every registry starts with.
func builtinCatalog() map[string]Definition {
	defs := []Definition{
		// Basic
		NewCategorical("work_type", "Work Type",
			"Type of plumbing work needed",
			CategoryBasic, PolarityRequired, 1.0,
			"Bathroom Fitting", "Kitchen Plumbing", "Leak Repair",
			"Pipe Installation", "Water Tank Cleaning"),
		NewCategorical("district", "District",
			"Preferred district for the plumber",
			CategoryBasic, PolarityPreferred, 0.8,
			gujaratDistricts...),
		NewCategorical("language", "Language",
			"Preferred language for communication",
			CategoryBasic, PolarityPreferred, 0.6,
			"Gujarati", "Hindi", "English", "Marathi"),

		// Professional
		NewNumeric("experience_years", "Experience Years",
			"Minimum years of experience required",
			CategoryProfessional, PolarityPreferred, 0.7, 0, 20, "years", HigherIsBetter),
		NewCategorical("license_type", "License Type",
			"Required license type",
			CategoryProfessional, PolarityPreferred, 0.8,
			"Licensed", "Unlicensed"),
		NewCategorical("insurance_status", "Insurance Status",
			"Insurance coverage requirement",
			CategoryProfessional, PolarityPreferred, 0.7,
			"Insured", "Not Insured"),
		NewCategorical("specialization_level", "Specialization Level",
			"Required specialization level",
			CategoryProfessional, PolarityPreferred, 0.6,
			"Beginner", "Intermediate", "Expert"),
		NewCategorical("required_equipment", "Required Equipment",
			"Required equipment for the job",
			CategoryProfessional, PolarityOptional, 0.6,
			"Basic Tools", "Advanced Equipment", "Professional Tools",
			"Specialized Equipment", "Industrial Tools"),
		NewCategorical("certifications", "Certifications",
			"Required certifications",
			CategoryProfessional, PolarityOptional, 0.5,
			"Plumbing License", "Advanced Plumbing License",
			"Master Plumber License", "Commercial Plumbing License",
			"Industrial Plumbing License"),

		// Logistical
		NewNumeric("response_time", "Response Time",
			"Maximum response time acceptable",
			CategoryLogistical, PolarityPreferred, 0.9, 5, 60, "minutes", LowerIsBetter),
		NewNumeric("max_distance", "Maximum Distance",
			"Maximum distance willing to travel",
			CategoryLogistical, PolarityPreferred, 0.8, 5, 100, "km", LowerIsBetter),
		NewCategorical("weekend_available", "Weekend Availability",
			"Weekend work availability",
			CategoryLogistical, PolarityOptional, 0.5,
			"Yes", "No"),
		NewCategorical("emergency_service", "Emergency Service",
			"Emergency service availability",
			CategoryLogistical, PolarityPreferred, 0.8,
			"Yes", "No"),

		// Quality
		NewNumeric("min_rating", "Minimum Rating",
			"Minimum rating required",
			CategoryQuality, PolarityPreferred, 0.7, 1.0, 5.0, "stars", HigherIsBetter),
		NewNumeric("min_success_rate", "Minimum Success Rate",
			"Minimum success rate required",
			CategoryQuality, PolarityPreferred, 0.6, 50, 100, "%", HigherIsBetter),
		NewNumeric("guarantee_period", "Guarantee Period",
			"Minimum guarantee period required",
			CategoryQuality, PolarityOptional, 0.5, 0, 365, "days", HigherIsBetter),

		// Financial
		NewNumeric("max_cost", "Maximum Cost",
			"Maximum cost willing to pay",
			CategoryFinancial, PolarityPreferred, 0.8, 100, 2000, "₹", LowerIsBetter),
		NewCategorical("payment_methods", "Payment Methods",
			"Preferred payment methods",
			CategoryFinancial, PolarityOptional, 0.4,
			"Cash", "Card", "UPI", "Net Banking"),
	}

	catalog := make(map[string]Definition, len(defs))
	for _, def := range defs {
		catalog[def.Name] = def
	}
	return catalog
}
