package skinai

import "strings"

// ParseFaceReport extracts the structured sections from the analyzer's
// reply. Sections the model skipped keep a neutral default, and the raw
// text is always preserved in Recommendations, so a reply that doesn't
// follow the template degrades to an unparsed report instead of failing.
func ParseFaceReport(text string) *FaceReport {
	report := &FaceReport{
		SkinType:        "Mista",
		Oiliness:        "Moderada",
		Pores:           "Médios",
		Texture:         "Lisa",
		FineLines:       "Leves",
		Spots:           "Leves",
		Acne:            "Ausente",
		Sensitivity:     "Baixa",
		Recommendations: text,
	}

	for _, line := range strings.Split(text, "\n") {
		upper := strings.ToUpper(line)
		value := sectionValue(line)
		if value == "" {
			continue
		}
		switch {
		case strings.Contains(upper, "TIPO DE PELE"):
			report.SkinType = value
		case strings.Contains(upper, "OLEOSIDADE"):
			report.Oiliness = value
		case strings.Contains(upper, "POROS"):
			report.Pores = value
		case strings.Contains(upper, "TEXTURA"):
			report.Texture = value
		case strings.Contains(upper, "LINHAS FINAS"):
			report.FineLines = value
		case strings.Contains(upper, "MANCHAS"):
			report.Spots = value
		case strings.Contains(upper, "ACNE"):
			report.Acne = value
		case strings.Contains(upper, "SENSIBILIDADE"):
			report.Sensitivity = value
		}
	}

	return report
}

// sectionValue returns the trimmed text after the last colon of a
// section header line, empty when the line carries no value.
func sectionValue(line string) string {
	idx := strings.LastIndex(line, ":")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(line[idx+1:])
}
