package normalize

import "encoding/json"

// リスト応答の包みはキー違いが多い。優先順：
//  1. トップレベルがそのまま配列
//  2. 汎用 "data"
//  3. ドメイン名キー（"products" など）
//  4. "items"
// どれも無ければ空扱い。
type listEnvelope struct {
	Data  []json.RawMessage `json:"data"`
	Items []json.RawMessage `json:"items"`
}

func listElements(data []byte, domainKey string) []json.RawMessage {
	var direct []json.RawMessage
	if err := json.Unmarshal(data, &direct); err == nil {
		return direct
	}

	var env listEnvelope
	if err := json.Unmarshal(data, &env); err == nil && env.Data != nil {
		return env.Data
	}

	// ドメイン名キーはターゲットごとに異なるので個別デコード
	var domain map[string]json.RawMessage
	if err := json.Unmarshal(data, &domain); err == nil {
		if raw, ok := domain[domainKey]; ok {
			var elems []json.RawMessage
			if err := json.Unmarshal(raw, &elems); err == nil {
				return elems
			}
		}
	}

	if env.Items != nil {
		return env.Items
	}
	return nil
}

// 単体応答の候補。直デコード→ "data" → ドメイン名キー → "result"。
type singleEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Result json.RawMessage `json:"result"`
}

func singleCandidates(data []byte, domainKey string) [][]byte {
	candidates := [][]byte{data}

	var env singleEnvelope
	if err := json.Unmarshal(data, &env); err == nil {
		if len(env.Data) > 0 {
			candidates = append(candidates, env.Data)
		}
	}

	var domain map[string]json.RawMessage
	if err := json.Unmarshal(data, &domain); err == nil {
		if raw, ok := domain[domainKey]; ok && len(raw) > 0 {
			candidates = append(candidates, raw)
		}
	}

	if len(env.Result) > 0 {
		candidates = append(candidates, env.Result)
	}
	return candidates
}
