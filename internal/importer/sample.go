package importer

import "github.com/jxmullins/projectboard/internal/project"

type sample struct {
	name        string
	slug        string
	description string
	status      project.Status
}

var samples = []sample{
	{"Urban Green Space Initiative", "urban-green-space", "Development of community parks and green spaces in urban areas to improve air quality and provide recreational areas for residents.", project.StatusActive},
	{"Renewable Energy Grid Expansion", "renewable-energy", "Expansion of renewable energy infrastructure to support increased demand and reduce carbon footprint.", project.StatusActive},
	{"Smart City Traffic Management", "traffic-management", "Implementation of AI-powered traffic management system to reduce congestion and improve commute times.", project.StatusPlanning},
	{"Coastal Erosion Prevention", "coastal-erosion", "Beach restoration and coastal protection measures to prevent erosion and protect shoreline communities.", project.StatusActive},
	{"Affordable Housing Development", "affordable-housing", "Construction of affordable housing units to address housing shortages in metropolitan areas.", project.StatusOnHold},
	{"Digital Literacy Program", "digital-literacy", "Community-based program to improve digital skills and access to technology for underserved populations.", project.StatusActive},
	{"Water Quality Improvement", "water-quality", "Upgrade of water treatment facilities and infrastructure to ensure safe drinking water for all residents.", project.StatusCompleted},
	{"Public Transportation Enhancement", "public-transport", "Expansion of bus and rail networks to improve connectivity and reduce reliance on private vehicles.", project.StatusActive},
	{"Waste Management Modernization", "waste-management", "Implementation of recycling programs and waste-to-energy facilities to reduce landfill usage.", project.StatusPlanning},
	{"Community Health Centers", "health-centers", "Establishment of new health centers in underserved neighborhoods to improve access to healthcare services.", project.StatusActive},
	{"Cybersecurity Infrastructure", "cybersecurity", "Enhancement of cybersecurity measures for critical infrastructure and government systems.", project.StatusActive},
	{"Historic Preservation Initiative", "historic-preservation", "Restoration and preservation of historic buildings and landmarks to maintain cultural heritage.", project.StatusOnHold},
	{"Rural Broadband Expansion", "rural-broadband", "Deployment of high-speed internet infrastructure to rural and remote areas to bridge the digital divide.", project.StatusActive},
	{"Emergency Response System Upgrade", "emergency-response", "Modernization of emergency services communication and response systems for improved public safety.", project.StatusCompleted},
	{"Sustainable Agriculture Program", "sustainable-agriculture", "Support for local farmers with sustainable farming practices and access to markets.", project.StatusPlanning},
}

// SamplePayloads returns up to n demo projects (all of them when n <= 0).
func SamplePayloads(n int) []project.Payload {
	if n <= 0 || n > len(samples) {
		n = len(samples)
	}
	out := make([]project.Payload, 0, n)
	for _, s := range samples[:n] {
		out = append(out, project.Payload{
			Name:                 s.name,
			Description:          s.description,
			Status:               s.status.String(),
			MapLink:              "https://maps.example.com/" + s.slug,
			ResourcesLink:        "https://resources.example.com/" + s.slug,
			ProposalBriefingLink: "https://proposals.example.com/" + s.slug + "-briefing",
		})
	}
	return out
}
