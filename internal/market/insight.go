package market

import (
	"strings"

	"github.com/JayDad/energy-insight-ui/internal/models"
)

// Signals are the readings the status table and insight rules look at.
type Signals struct {
	BrentPrice  float64
	BrentChange float64
	KRWChange   float64
	SteelChange float64
}

func signalsOf(oil models.OilPrices, fx models.ExchangeRates, com models.CommodityPrices) Signals {
	return Signals{
		BrentPrice:  oil.Brent.Value,
		BrentChange: oil.Brent.Change,
		KRWChange:   fx.USDKRW.Change,
		SteelChange: com.Steel.Change,
	}
}

var (
	statusFavorable   = models.MarketStatus{Status: "favorable", Label: "FAVORABLE", Color: "#51cf66", Icon: "🟢"}
	statusUnfavorable = models.MarketStatus{Status: "unfavorable", Label: "UNFAVORABLE", Color: "#ff6b6b", Icon: "🔴"}
	statusNeutral     = models.MarketStatus{Status: "neutral", Label: "NEUTRAL", Color: "#ffd43b", Icon: "🟡"}
)

// Status labels the market from the Brent and USD/KRW changes.
func Status(s Signals) models.MarketStatus {
	switch {
	case s.BrentChange > 1 && s.KRWChange < 0:
		return statusFavorable
	case s.BrentChange < -1 && s.KRWChange > 1:
		return statusUnfavorable
	default:
		return statusNeutral
	}
}

type rule struct {
	when     func(Signals) bool
	fragment string
}

// insightRules are evaluated group by group. The first matching rule of a
// group contributes its fragment; groups concatenate in order.
var insightRules = [][]rule{
	{
		{func(s Signals) bool { return s.BrentPrice > 85 && s.BrentChange > 0 }, "브렌트유가 $85 이상으로 상승하며 해양 플랜트 수주 활동 강화 시점입니다. "},
		{func(s Signals) bool { return s.BrentPrice > 80 }, "유가가 안정적인 수준을 유지하며 해양 프로젝트 투자 환경이 우호적입니다. "},
		{func(s Signals) bool { return s.BrentPrice < 75 }, "유가 하락으로 석유사들의 신규 투자가 보수적일 수 있습니다. "},
	},
	{
		{func(s Signals) bool { return s.KRWChange < 0 }, "원화 약세로 수출 경쟁력이 우수합니다. "},
		{func(s Signals) bool { return s.KRWChange > 1 }, "원화 강세로 수출 가격 경쟁력 확보가 필요합니다. "},
	},
	{
		{func(s Signals) bool { return s.SteelChange > 2 }, "철강가 급등으로 건조 원가 상승이 예상됩니다. "},
		{func(s Signals) bool { return s.SteelChange < -1 }, "철강가 하락으로 원가 경쟁력이 개선되고 있습니다. "},
	},
	{
		{func(s Signals) bool { return s.BrentChange > 0 && s.KRWChange < 0 }, "적극적인 영업 활동과 신규 수주 확대를 권장합니다."},
		{func(s Signals) bool { return s.BrentChange < -2 }, "시장 모니터링을 강화하고 기존 프로젝트에 집중하는 것이 좋습니다."},
		{func(Signals) bool { return true }, "안정적인 시장 환경에서 균형잡힌 사업 전략이 필요합니다."},
	},
}

const insightPending = "시장 데이터를 분석 중입니다."

// Insight renders the rule table for the given signals.
func Insight(s Signals) string {
	return renderInsight(insightRules, s)
}

func renderInsight(groups [][]rule, s Signals) string {
	var b strings.Builder
	for _, group := range groups {
		for _, r := range group {
			if r.when(s) {
				b.WriteString(r.fragment)
				break
			}
		}
	}
	if b.Len() == 0 {
		return insightPending
	}
	return b.String()
}
