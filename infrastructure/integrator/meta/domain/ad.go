package metadomain

// NamedNode é um objeto aninhado da Graph API do qual só pedimos o nome
type NamedNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Ad struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	EffectiveStatus string     `json:"effective_status"`
	Campaign        *NamedNode `json:"campaign"`
	AdSet           *NamedNode `json:"adset"`
}

// DeliveryStatus prefere effective_status, que considera campanha e conjunto pausados
func (a Ad) DeliveryStatus() string {
	if a.EffectiveStatus != "" {
		return a.EffectiveStatus
	}
	return a.Status
}

func (a Ad) CampaignName() string {
	if a.Campaign == nil {
		return ""
	}
	return a.Campaign.Name
}

func (a Ad) AdSetName() string {
	if a.AdSet == nil {
		return ""
	}
	return a.AdSet.Name
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors  Cursors `json:"cursors"`
	Next     string  `json:"next,omitempty"`
	Previous string  `json:"previous,omitempty"`
}
