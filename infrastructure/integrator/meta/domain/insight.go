package metadomain

import (
	"slices"
	"strconv"

	"github.com/sirupsen/logrus"
)

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// LeadActionTypes são os action_type que a Graph API usa para leads.
// Os tipos se sobrepõem para o mesmo evento, por isso o resultado é o maior valor e não a soma.
var LeadActionTypes = []string{
	"lead",
	"offsite_conversion.fb_pixel_lead",
	"onsite_conversion.lead_grouped",
	"complete_registration",
	"offsite_conversion.fb_pixel_complete_registration",
	"offsite_complete_registration_add_meta_leads",
}

type AdInsight struct {
	AdID        string   `json:"ad_id"`
	Actions     []Action `json:"actions"`
	Clicks      string   `json:"clicks"`
	DateStart   string   `json:"date_start"`
	DateStop    string   `json:"date_stop"`
	Impressions string   `json:"impressions"`
	Spend       string   `json:"spend"`
}

// GetLeads retorna o maior valor entre as ações de lead
func (i *AdInsight) GetLeads() int {
	leads := 0
	for _, action := range i.Actions {
		if !slices.Contains(LeadActionTypes, action.ActionType) {
			continue
		}

		value, err := strconv.ParseFloat(action.Value, 64)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"ad_id":       i.AdID,
				"action_type": action.ActionType,
				"value":       action.Value,
			}).Warn("insights: failed to parse action value")
			continue
		}

		if int(value) > leads {
			leads = int(value)
		}
	}

	return leads
}
