package rules

// defaultTemplate is used for states with no specific statutory form. It is a
// conservative general-purpose notice that identifies the claimant and the
// property without citing a statute.
var defaultTemplate = Template{
	Title: "NOTICE OF FURNISHING LABOR AND MATERIALS",
	WarningText: "NOTICE TO PROPERTY OWNER: The undersigned has furnished or will furnish " +
		"labor, services, equipment, or materials for the improvement of the property " +
		"described below. This notice is provided to protect the undersigned's right to " +
		"assert a claim against the property if not paid.",
	LegalClauses: []string{
		"This notice is not a lien and is not a reflection on the integrity of any contractor or subcontractor.",
		"The claimant identified below has a contract with {{gc_name}} to provide labor or materials to the project known as {{project_name}}.",
		"The estimated total price of the labor, services, equipment, or materials furnished or to be furnished is {{contract_amount}}.",
	},
	CertifiedMailRequired: false,
	NotaryRequired:        false,
}

// stateRules is the statutory rule table, keyed by full state name. States
// without a preliminary-notice statute get a generic entry via init below.
var stateRules = map[string]Rule{
	"California": {
		State:          "California",
		DeadlineDays:   20,
		NoticeRequired: true,
		Template: Template{
			Title: "CALIFORNIA 20-DAY PRELIMINARY NOTICE",
			WarningText: "NOTICE TO PROPERTY OWNER: EVEN THOUGH YOU HAVE PAID YOUR CONTRACTOR IN FULL, " +
				"if the person or firm that has given you this notice is not paid in full for labor, " +
				"service, equipment, or material provided or to be provided to your construction project, " +
				"a mechanics lien may be placed on your property.",
			LegalClauses: []string{
				"This preliminary notice is given pursuant to California Civil Code sections 8200-8216.",
				"The name and address of the person furnishing labor, service, equipment, or material is set forth below.",
				"An estimate of the total price of the labor, service, equipment, or material furnished or to be furnished is {{contract_amount}}.",
				"The name of the party who contracted for the purchase of the labor, service, equipment, or material is {{gc_name}}.",
			},
			CertifiedMailRequired: true,
			NotaryRequired:        false,
		},
	},
	"Arizona": {
		State:          "Arizona",
		DeadlineDays:   20,
		NoticeRequired: true,
		Template: Template{
			Title: "ARIZONA PRELIMINARY TWENTY DAY NOTICE",
			WarningText: "IN ACCORDANCE WITH ARIZONA REVISED STATUTES 33-992.01, THIS IS NOT A LIEN. " +
				"THIS IS NOT A REFLECTION ON THE INTEGRITY OF ANY CONTRACTOR OR SUBCONTRACTOR.",
			LegalClauses: []string{
				"You are hereby notified that the claimant has furnished or will furnish labor, professional services, materials, machinery, fixtures or tools in the construction, alteration or repair of the property described below.",
				"An estimate of the total price of the labor, professional services, materials, machinery, fixtures or tools is {{contract_amount}}.",
				"The claimant reserves the right to claim a lien for twenty days' worth of labor and materials preceding service of this notice.",
			},
			CertifiedMailRequired: true,
			NotaryRequired:        false,
		},
	},
	"Washington": {
		State:          "Washington",
		DeadlineDays:   60,
		NoticeRequired: true,
		Template: Template{
			Title: "WASHINGTON NOTICE TO OWNER OF RIGHT TO CLAIM LIEN",
			WarningText: "IMPORTANT: READ BOTH SIDES OF THIS NOTICE CAREFULLY. PROTECT YOURSELF FROM " +
				"PAYING TWICE. This notice is given under chapter 60.04 RCW.",
			LegalClauses: []string{
				"At the request of {{gc_name}}, the claimant has begun to furnish labor, professional services, materials, or equipment for the improvement of your property.",
				"Every person furnishing labor or materials has a right to claim a lien against your property if not paid.",
				"The claimant may be required to record a claim of lien within ninety days of ceasing to furnish labor or materials.",
			},
			CertifiedMailRequired: true,
			NotaryRequired:        false,
		},
	},
	"Oregon": {
		State:          "Oregon",
		DeadlineDays:   8,
		NoticeRequired: true,
		Template: Template{
			Title: "OREGON NOTICE OF RIGHT TO A LIEN",
			WarningText: "WARNING: READ THIS NOTICE. PROTECT YOURSELF FROM PAYING ANY CONTRACTOR OR " +
				"SUPPLIER TWICE FOR THE SAME SERVICE. This notice is given under ORS 87.021.",
			LegalClauses: []string{
				"The claimant has begun to provide labor, materials, equipment, or services ordered by {{gc_name}} for improvements to property you own.",
				"If the claimant is not paid, a construction lien may be filed against the property.",
				"This notice must be delivered within eight days, Saturdays, Sundays and holidays excluded, of first delivery.",
			},
			CertifiedMailRequired: true,
			NotaryRequired:        false,
		},
	},
	"Texas": {
		State:          "Texas",
		DeadlineDays:   60,
		NoticeRequired: true,
		Template: Template{
			Title: "TEXAS NOTICE OF UNPAID BALANCE (MONTHLY NOTICE)",
			WarningText: "WARNING: THIS NOTICE IS PROVIDED TO PRESERVE LIEN RIGHTS UNDER CHAPTER 53 OF " +
				"THE TEXAS PROPERTY CODE. FAILURE OF THE OWNER TO WITHHOLD FUNDS MAY RESULT IN " +
				"PERSONAL LIABILITY AND A LIEN ON THE PROPERTY.",
			LegalClauses: []string{
				"The claimant furnished labor or materials to {{gc_name}} for the project described below and remains unpaid.",
				"The claim relates to labor or materials first furnished on {{furnishing_date}}.",
				"If this claim remains unpaid, the owner may be personally liable and the property subjected to a lien unless the owner withholds payments from the contractor or the claim is otherwise paid or settled.",
			},
			CertifiedMailRequired: true,
			NotaryRequired:        false,
		},
	},
	"Florida": {
		State:          "Florida",
		DeadlineDays:   45,
		NoticeRequired: true,
		Template: Template{
			Title: "FLORIDA NOTICE TO OWNER",
			WarningText: "WARNING! FLORIDA'S CONSTRUCTION LIEN LAW ALLOWS SOME UNPAID CONTRACTORS, " +
				"SUBCONTRACTORS, AND MATERIAL SUPPLIERS TO FILE LIENS AGAINST YOUR PROPERTY EVEN IF " +
				"YOU HAVE MADE PAYMENT IN FULL.",
			LegalClauses: []string{
				"Under Florida Statutes section 713.06, the claimant hereby notifies you that it has furnished or will furnish services or materials for the improvement of the real property described below.",
				"The services or materials are furnished under an order given by {{gc_name}}.",
				"LEARN MORE ABOUT THE CONSTRUCTION LIEN LAW, CHAPTER 713, PART I, FLORIDA STATUTES.",
			},
			CertifiedMailRequired: true,
			NotaryRequired:        false,
		},
	},
	"Georgia": {
		State:          "Georgia",
		DeadlineDays:   30,
		NoticeRequired: true,
		Template: Template{
			Title: "GEORGIA PRELIMINARY NOTICE OF LIEN RIGHTS",
			WarningText: "THIS NOTICE IS GIVEN PURSUANT TO O.C.G.A. 44-14-361.3 TO PRESERVE THE " +
				"CLAIMANT'S RIGHT TO CLAIM A LIEN ON THE PROPERTY DESCRIBED BELOW.",
			LegalClauses: []string{
				"The claimant furnishes labor, services, or materials to the project at the request of {{gc_name}}.",
				"The amount due or to become due to the claimant under its contract is {{contract_amount}}.",
			},
			CertifiedMailRequired: false,
			NotaryRequired:        true,
		},
	},
	"Nevada": {
		State:          "Nevada",
		DeadlineDays:   31,
		NoticeRequired: true,
		Template: Template{
			Title: "NEVADA NOTICE OF RIGHT TO LIEN",
			WarningText: "NOTICE TO PROPERTY OWNER: This notice is given under NRS 108.245. IT IS NOT " +
				"A LIEN AGAINST YOUR PROPERTY AND DOES NOT REFLECT ON THE INTEGRITY OF ANY CONTRACTOR.",
			LegalClauses: []string{
				"The claimant has supplied or will supply materials, equipment, or work to the project under contract with {{gc_name}}.",
				"If the claimant is not paid, the claimant may record a notice of lien against the property.",
			},
			CertifiedMailRequired: true,
			NotaryRequired:        false,
		},
	},
	"Utah": {
		State:          "Utah",
		DeadlineDays:   20,
		NoticeRequired: true,
		Template: Template{
			Title: "UTAH PRELIMINARY NOTICE",
			WarningText: "THIS PRELIMINARY NOTICE IS FILED WITH THE STATE CONSTRUCTION REGISTRY " +
				"PURSUANT TO UTAH CODE 38-1a-501 TO PRESERVE LIEN RIGHTS.",
			LegalClauses: []string{
				"The claimant furnishes labor, service, equipment, or material to the project under an agreement with {{gc_name}}.",
				"Filing within twenty days of first furnishing preserves lien rights relating back to the first furnishing date of {{furnishing_date}}.",
			},
			CertifiedMailRequired: false,
			NotaryRequired:        false,
		},
	},
	"New Mexico": {
		State:          "New Mexico",
		DeadlineDays:   60,
		NoticeRequired: true,
		Template: Template{
			Title: "NEW MEXICO PRELIMINARY NOTICE OF RIGHT TO LIEN",
			WarningText: "NOTICE IS GIVEN UNDER NMSA 48-2-2.1 THAT THE CLAIMANT MAY CLAIM A LIEN " +
				"AGAINST THE PROPERTY DESCRIBED BELOW IF NOT PAID.",
			LegalClauses: []string{
				"The claimant furnishes labor or materials to the project at the request of {{gc_name}}.",
				"This notice applies to claims exceeding five thousand dollars.",
			},
			CertifiedMailRequired: true,
			NotaryRequired:        false,
		},
	},
	"Colorado": {
		State:          "Colorado",
		DeadlineDays:   30,
		NoticeRequired: false,
		Template: Template{
			Title: "COLORADO NOTICE OF INTENT TO FILE LIEN",
			WarningText: "NOTICE TO PROPERTY OWNER: A preliminary notice is not required in Colorado, " +
				"but a notice of intent must be served at least ten days before filing a lien statement.",
			LegalClauses: []string{
				"The claimant has furnished labor or materials for the improvement of the property described below.",
				"If payment is not received, the claimant intends to file a mechanic's lien pursuant to C.R.S. 38-22-109.",
			},
			CertifiedMailRequired: true,
			NotaryRequired:        true,
		},
	},
	"Ohio": {
		State:          "Ohio",
		DeadlineDays:   21,
		NoticeRequired: true,
		Template: Template{
			Title: "OHIO NOTICE OF FURNISHING",
			WarningText: "THIS NOTICE OF FURNISHING IS SERVED UNDER OHIO REVISED CODE 1311.05 TO " +
				"PRESERVE THE CLAIMANT'S LIEN RIGHTS.",
			LegalClauses: []string{
				"The claimant has performed or will perform labor or work or has furnished or will furnish materials to the project under contract with {{gc_name}}.",
				"Service within twenty-one days of first furnishing preserves full lien rights.",
			},
			CertifiedMailRequired: true,
			NotaryRequired:        false,
		},
	},
	"Tennessee": {
		State:          "Tennessee",
		DeadlineDays:   90,
		NoticeRequired: true,
		Template: Template{
			Title: "TENNESSEE NOTICE OF NONPAYMENT",
			WarningText: "THIS NOTICE IS GIVEN UNDER TENN. CODE ANN. 66-11-145 TO PRESERVE THE " +
				"CLAIMANT'S RIGHT OF LIEN ON THE PROPERTY DESCRIBED BELOW.",
			LegalClauses: []string{
				"The claimant furnished labor, materials, or services for the improvement of the property and has not been paid.",
				"The last date of furnishing relevant to this notice period was within ninety days preceding service.",
			},
			CertifiedMailRequired: true,
			NotaryRequired:        true,
		},
	},
}

// States with no statutory preliminary-notice requirement share the generic
// template and a recommended 30-day voluntary notice window.
var noNoticeStates = []string{
	"Alabama", "Alaska", "Arkansas", "Connecticut", "Delaware",
	"District of Columbia", "Hawaii", "Idaho", "Illinois", "Indiana", "Iowa",
	"Kansas", "Kentucky", "Louisiana", "Maine", "Maryland", "Massachusetts",
	"Michigan", "Minnesota", "Mississippi", "Missouri", "Montana", "Nebraska",
	"New Hampshire", "New Jersey", "New York", "North Carolina", "North Dakota",
	"Oklahoma", "Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Vermont", "Virginia", "West Virginia", "Wisconsin", "Wyoming",
}

func init() {
	for _, s := range noNoticeStates {
		stateRules[s] = Rule{
			State:          s,
			DeadlineDays:   30,
			NoticeRequired: false,
			Template:       defaultTemplate,
		}
	}
}
