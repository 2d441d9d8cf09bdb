package corpus

import "github.com/skyatlas/missionq/pkg/common"

// SeedDocuments returns the built-in mission documentation corpus used
// when no external document source is configured.
func SeedDocuments() []common.Document {
	return []common.Document{
		{
			ID:       "doc-insat-3d",
			URL:      "https://www.mosdac.gov.in/insat-3d",
			Title:    "INSAT-3D Mission Overview",
			Category: "satellite",
			Content: "INSAT-3D is an advanced meteorological satellite launched by " +
				"ISRO in July 2013. The satellite carries a six channel Imager and " +
				"a nineteen channel Sounder for atmospheric observations over the " +
				"Indian region. The Imager provides cloud imagery and sea surface " +
				"temperature, while the Sounder retrieves humidity profiles and " +
				"temperature soundings. Derived products include rainfall " +
				"estimates, outgoing longwave radiation and fog detection. Data " +
				"from INSAT-3D is archived and distributed through MOSDAC.",
		},
		{
			ID:       "doc-insat-3dr",
			URL:      "https://www.mosdac.gov.in/insat-3dr",
			Title:    "INSAT-3DR Follow-on Mission",
			Category: "satellite",
			Content: "INSAT-3DR is the follow-on meteorological mission to INSAT-3D, " +
				"launched by ISRO in September 2016. Like its predecessor it " +
				"carries an Imager and a Sounder, continuing the INSAT programme " +
				"of geostationary weather observation. INSAT-3DR improves the " +
				"middle infrared band for night time cloud imagery and supports " +
				"satellite aided search and rescue. The India Meteorological " +
				"Department uses INSAT-3DR products for cyclone monitoring.",
		},
		{
			ID:       "doc-oceansat-2",
			URL:      "https://www.mosdac.gov.in/oceansat-2",
			Title:    "Oceansat-2 Ocean Observation",
			Category: "satellite",
			Content: "Oceansat-2 is an earth observation mission operated by ISRO " +
				"for ocean applications. The satellite carries the Ocean Colour " +
				"Monitor and a Ku-band Scatterometer. The Ocean Colour Monitor " +
				"measures chlorophyll concentration and suspended sediment in " +
				"coastal waters, while the Scatterometer retrieves wind vectors " +
				"over the global oceans. Oceansat-2 products support fishery " +
				"forecasting and potential fishing zone advisories.",
		},
		{
			ID:       "doc-megha-tropiques",
			URL:      "https://www.mosdac.gov.in/megha-tropiques",
			Title:    "Megha-Tropiques Climate Mission",
			Category: "satellite",
			Content: "Megha-Tropiques is an Indo-French joint satellite mission " +
				"conducted by ISRO and CNES to study the water cycle in the " +
				"tropical atmosphere. The satellite carries MADRAS, a microwave " +
				"imager for rainfall measurement, SAPHIR for humidity profiles " +
				"and ScaRaB for radiation budget studies. Megha-Tropiques " +
				"observations improve understanding of convective systems and " +
				"monsoon variability.",
		},
		{
			ID:       "doc-saral",
			URL:      "https://www.mosdac.gov.in/saral-altika",
			Title:    "SARAL AltiKa Altimetry",
			Category: "satellite",
			Content: "SARAL is a joint ISRO and CNES mission for ocean altimetry. " +
				"The satellite carries AltiKa, the first Ka-band radar altimeter, " +
				"which measures sea surface height with improved spatial " +
				"resolution. SARAL data products include significant wave height " +
				"and wind speed over the oceans, supporting ocean circulation " +
				"studies and operational oceanography.",
		},
		{
			ID:       "doc-mosdac-portal",
			URL:      "https://www.mosdac.gov.in/about",
			Title:    "MOSDAC Data Services",
			Category: "portal",
			Content: "MOSDAC, the Meteorological and Oceanographic Satellite Data " +
				"Archival Centre, is hosted at the Space Applications Centre of " +
				"ISRO. MOSDAC provides rainfall products, sea surface temperature, " +
				"cloud imagery, soil moisture and wind vectors derived from " +
				"Indian satellite missions including INSAT-3D, INSAT-3DR, " +
				"Oceansat-2, SCATSAT-1 and Megha-Tropiques. Registered users can " +
				"order archived data and subscribe to near real time products.",
		},
	}
}
