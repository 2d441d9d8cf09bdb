package extract

import (
	"regexp"

	"github.com/skyatlas/missionq/pkg/common"
)

// domainRules returns the ordered pattern set for the satellite-mission
// corpus. Patterns are case-insensitive and anchored on word boundaries;
// name variants (hyphen vs. space) match the same rule.
func domainRules() []rule {
	specs := []struct {
		expr  string
		label common.EntityLabel
	}{
		{`INSAT[- ]3DR`, common.LabelSatellite},
		{`INSAT[- ]3DS`, common.LabelSatellite},
		{`INSAT[- ]3D`, common.LabelSatellite},
		{`INSAT[- ]3A`, common.LabelSatellite},
		{`KALPANA[- ]1`, common.LabelSatellite},
		{`Oceansat[- ]2`, common.LabelSatellite},
		{`Oceansat[- ]3`, common.LabelSatellite},
		{`Megha[- ]Tropiques`, common.LabelSatellite},
		{`SARAL`, common.LabelSatellite},
		{`SCATSAT[- ]1`, common.LabelSatellite},
		{`Cartosat[- ]\d`, common.LabelSatellite},
		{`RISAT[- ]\d`, common.LabelSatellite},

		{`Imager`, common.LabelInstrument},
		{`Sounder`, common.LabelInstrument},
		{`Ocean Colou?r Monitor`, common.LabelInstrument},
		{`OCM`, common.LabelInstrument},
		{`Scatterometer`, common.LabelInstrument},
		{`AltiKa`, common.LabelInstrument},
		{`MADRAS`, common.LabelInstrument},
		{`SAPHIR`, common.LabelInstrument},
		{`ScaRaB`, common.LabelInstrument},

		{`ISRO`, common.LabelOrganization},
		{`Indian Space Research Organisation`, common.LabelOrganization},
		{`MOSDAC`, common.LabelOrganization},
		{`Space Applications Centre`, common.LabelOrganization},
		{`SAC`, common.LabelOrganization},
		{`India Meteorological Department`, common.LabelOrganization},
		{`IMD`, common.LabelOrganization},
		{`NRSC`, common.LabelOrganization},
		{`CNES`, common.LabelOrganization},
		{`NASA`, common.LabelOrganization},
		{`EUMETSAT`, common.LabelOrganization},

		{`rainfall`, common.LabelDataProduct},
		{`sea surface temperature`, common.LabelDataProduct},
		{`chlorophyll`, common.LabelDataProduct},
		{`ocean colou?r`, common.LabelDataProduct},
		{`wind vectors?`, common.LabelDataProduct},
		{`wind speed`, common.LabelDataProduct},
		{`humidity profiles?`, common.LabelDataProduct},
		{`soil moisture`, common.LabelDataProduct},
		{`cloud imagery`, common.LabelDataProduct},
		{`outgoing longwave radiation`, common.LabelDataProduct},
		{`aerosol optical depth`, common.LabelDataProduct},

		{`INSAT programme`, common.LabelMission},
		{`INSAT series`, common.LabelMission},
		{`Oceansat programme`, common.LabelMission},
		{`earth observation mission`, common.LabelMission},
		{`Indo[- ]French joint (?:satellite )?mission`, common.LabelMission},
		{`meteorological mission`, common.LabelMission},
	}

	rules := make([]rule, 0, len(specs))
	for _, s := range specs {
		rules = append(rules, rule{
			pattern: regexp.MustCompile(`(?i)\b(?:` + s.expr + `)\b`),
			label:   s.label,
		})
	}
	return rules
}
