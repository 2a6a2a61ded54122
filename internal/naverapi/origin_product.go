package naverapi

// 原商品はAPIから受け取ったJSONをそのまま保持する。
// 構造体に落とすと未知フィールドが全量PUTで欠落するため、
// 値の読み書きはこのアクセサ経由で行う。
type OriginProduct map[string]any

func (p OriginProduct) Name() string {
	return asString(p["name"])
}

func (p OriginProduct) SalePrice() int64 {
	return asInt64(p["salePrice"])
}

func (p OriginProduct) SetSalePrice(v int64) {
	p["salePrice"] = v
}

func (p OriginProduct) SellerManagementCode() string {
	detail := asMap(p["detailAttribute"])
	codeInfo := asMap(detail["sellerCodeInfo"])
	return asString(codeInfo["sellerManagementCode"])
}

// detailAttribute.optionInfo.optionCombinations を返す。
// 返り値のmapは元のJSONツリーを共有しているので、SetPriceの変更はPUT本体に反映される。
func (p OriginProduct) OptionCombinations() []OptionCombination {
	detail := asMap(p["detailAttribute"])
	optionInfo := asMap(detail["optionInfo"])
	raw, ok := optionInfo["optionCombinations"].([]any)
	if !ok {
		return nil
	}

	combinations := make([]OptionCombination, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			combinations = append(combinations, OptionCombination(m))
		}
	}
	return combinations
}

type OptionCombination map[string]any

func (o OptionCombination) ID() int64 {
	return asInt64(o["id"])
}

func (o OptionCombination) OptionName() string {
	return asString(o["optionName1"])
}

func (o OptionCombination) StockQuantity() int64 {
	return asInt64(o["stockQuantity"])
}

func (o OptionCombination) Price() int64 {
	return asInt64(o["price"])
}

func (o OptionCombination) SetPrice(v int64) {
	o["price"] = v
}

func (o OptionCombination) Usable() bool {
	b, _ := o["usable"].(bool)
	return b
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// encoding/jsonは数値をfloat64にデコードする
func asInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}
