package graph

import (
	"fmt"

	"github.com/skyatlas/missionq/pkg/common"
)

// Evidence tag attached to seeded relations.
const domainKnowledgeEvidence = "domain_knowledge"

// Static per-label description templates for entities first seen in a
// document.
var labelTemplates = map[common.EntityLabel]string{
	common.LabelSatellite:    "%s is a satellite referenced in the mission documentation corpus.",
	common.LabelInstrument:   "%s is an instrument payload referenced in the mission documentation corpus.",
	common.LabelOrganization: "%s is an organization involved in satellite missions and data services.",
	common.LabelDataProduct:  "%s is a geophysical data product derived from satellite observations.",
	common.LabelMission:      "%s is a satellite mission or programme.",
}

// Curated descriptions for well-known canonical entities, keyed by
// canonical id. They take precedence over the label templates.
var curatedDescriptions = map[string]string{
	"SATELLITE_insat-3d":        "INSAT-3D is an advanced meteorological satellite of ISRO carrying an Imager and a Sounder for weather observation over the Indian region.",
	"SATELLITE_insat-3dr":       "INSAT-3DR is the follow-on meteorological satellite to INSAT-3D with an improved Imager and Sounder payload.",
	"SATELLITE_kalpana-1":       "KALPANA-1 was ISRO's first dedicated meteorological satellite, carrying a Very High Resolution Radiometer.",
	"SATELLITE_oceansat-2":      "Oceansat-2 is an ISRO ocean observation satellite carrying the Ocean Colour Monitor and a Ku-band Scatterometer.",
	"SATELLITE_oceansat-3":      "Oceansat-3 continues the Oceansat series with ocean colour, sea surface temperature and wind observation payloads.",
	"SATELLITE_megha-tropiques": "Megha-Tropiques is an Indo-French joint satellite mission studying the water cycle and energy exchanges in the tropics.",
	"SATELLITE_saral":           "SARAL is an Indo-French altimetry mission carrying the AltiKa Ka-band altimeter for ocean surface topography.",
	"SATELLITE_scatsat-1":       "SCATSAT-1 is an ISRO satellite providing ocean surface wind vector observations with a Ku-band scatterometer.",
	"INSTRUMENT_imager":         "The Imager is a multi-spectral radiometer producing cloud imagery and derived meteorological products.",
	"INSTRUMENT_sounder":        "The Sounder retrieves vertical temperature and humidity profiles of the atmosphere.",
	"INSTRUMENT_ocm":            "The Ocean Colour Monitor (OCM) measures ocean colour for chlorophyll and sediment studies.",
	"INSTRUMENT_altika":         "AltiKa is a Ka-band radar altimeter measuring sea surface height.",
	"ORGANIZATION_isro":         "The Indian Space Research Organisation (ISRO) builds and operates India's earth observation and meteorological satellites.",
	"ORGANIZATION_mosdac":       "MOSDAC is the Meteorological and Oceanographic Satellite Data Archival Centre, the data archive and dissemination facility at Space Applications Centre.",
	"ORGANIZATION_sac":          "The Space Applications Centre (SAC) is the ISRO centre responsible for satellite payload development and data processing.",
	"ORGANIZATION_cnes":         "CNES is the French national space agency and partner in the Megha-Tropiques and SARAL missions.",
}

func describeEntity(id, name string, label common.EntityLabel) string {
	if curated, ok := curatedDescriptions[id]; ok {
		return curated
	}
	template, ok := labelTemplates[label]
	if !ok {
		template = "%s"
	}
	return fmt.Sprintf(template, name)
}

type seedRelation struct {
	sourceLabel common.EntityLabel
	sourceName  string
	relType     string
	targetLabel common.EntityLabel
	targetName  string
}

// Known-true relations seeded after document processing. Seeding only
// fills gaps: an existing relation with the same id is left untouched.
var seedRelations = []seedRelation{
	{common.LabelOrganization, "ISRO", "operates", common.LabelSatellite, "INSAT-3D"},
	{common.LabelOrganization, "ISRO", "operates", common.LabelSatellite, "INSAT-3DR"},
	{common.LabelOrganization, "ISRO", "operates", common.LabelSatellite, "Oceansat-2"},
	{common.LabelOrganization, "ISRO", "operates", common.LabelOrganization, "MOSDAC"},
	{common.LabelSatellite, "INSAT-3D", "carries", common.LabelInstrument, "Imager"},
	{common.LabelSatellite, "INSAT-3D", "carries", common.LabelInstrument, "Sounder"},
	{common.LabelSatellite, "Oceansat-2", "carries", common.LabelInstrument, "OCM"},
	{common.LabelSatellite, "SARAL", "carries", common.LabelInstrument, "AltiKa"},
	{common.LabelOrganization, "MOSDAC", "provides", common.LabelDataProduct, "rainfall"},
	{common.LabelOrganization, "CNES", "conducts", common.LabelSatellite, "Megha-Tropiques"},
}

// SeedDomainKnowledge inserts the fixed set of known-true relations with
// confidence 1.0 and a domain_knowledge evidence tag. Missing endpoint
// entities are created from the curated description table with zero
// mention frequency. Safe to call repeatedly.
func (s *Store) SeedDomainKnowledge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, seed := range seedRelations {
		sourceID := s.ensureSeedEntityLocked(seed.sourceLabel, seed.sourceName)
		targetID := s.ensureSeedEntityLocked(seed.targetLabel, seed.targetName)

		relID := RelationID(sourceID, seed.relType, targetID)
		if _, ok := s.relations[relID]; ok {
			continue
		}
		s.relations[relID] = &common.Relation{
			ID:                  relID,
			SourceEntityID:      sourceID,
			TargetEntityID:      targetID,
			Type:                seed.relType,
			Confidence:          1.0,
			EvidenceDocumentIDs: []string{domainKnowledgeEvidence},
		}
		s.relationOrder = append(s.relationOrder, relID)
	}
}

func (s *Store) ensureSeedEntityLocked(label common.EntityLabel, name string) string {
	id := EntityID(label, name)
	if _, ok := s.entities[id]; ok {
		return id
	}
	s.entities[id] = &common.Entity{
		ID:            id,
		Name:          name,
		Type:          label,
		Description:   describeEntity(id, name, label),
		Frequency:     0,
		AvgConfidence: 1.0,
	}
	s.entityOrder = append(s.entityOrder, id)
	return id
}
