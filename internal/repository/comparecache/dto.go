package comparecache

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/surfcmp/internal/domain/classification"
	"github.com/kailas-cloud/surfcmp/internal/domain/match"
	"github.com/kailas-cloud/surfcmp/internal/domain/object"
)

// reportDTO is the cached representation of a match.Report.
type reportDTO struct {
	Matches []matchDTO     `json:"matches"`
	Pairs   map[string]int `json:"pairs"`
}

type matchDTO struct {
	ID             int64  `json:"id"`
	Partner        int64  `json:"partner"`
	Category       string `json:"category"`
	Classification int64  `json:"classification"`
}

func encodeReport(r match.Report) ([]byte, error) {
	dto := reportDTO{
		Matches: make([]matchDTO, len(r.Matches)),
		Pairs:   make(map[string]int, len(r.Pairs)),
	}
	for i, m := range r.Matches {
		dto.Matches[i] = matchDTO{
			ID:             m.ID,
			Partner:        m.Partner,
			Category:       string(m.Category),
			Classification: m.Classification.Code(),
		}
	}
	for c, n := range r.Pairs {
		dto.Pairs[string(c)] = n
	}
	data, err := json.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

func decodeReport(data []byte) (match.Report, error) {
	var dto reportDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return match.Report{}, fmt.Errorf("unmarshal report: %w", err)
	}

	report := match.Report{
		Matches: make(match.List, 0, len(dto.Matches)),
		Pairs:   make(map[object.Category]int, len(dto.Pairs)),
	}
	for _, m := range dto.Matches {
		c, err := classification.FromCode(m.Classification)
		if err != nil {
			return match.Report{}, fmt.Errorf("match %d: %w", m.ID, err)
		}
		cat := object.Category(m.Category)
		if cat != object.Plane && cat != object.Surface {
			return match.Report{}, fmt.Errorf("match %d: unknown category %q", m.ID, m.Category)
		}
		report.Matches = append(report.Matches, match.Match{
			ID:             m.ID,
			Partner:        m.Partner,
			Category:       cat,
			Classification: c,
		})
	}
	for c, n := range dto.Pairs {
		report.Pairs[object.Category(c)] = n
	}
	return report, nil
}
