package mockapi

import "github.com/labstack/echo/v4"

// レスポンスの包み方はエンドポイントごとに変える。実際のバックエンドが
// ハンドラごとに形を揃えていない状況を再現するため、パス長で決める。
func shapeFor(c echo.Context, n int) int {
	return len(c.Path()) % n
}

// errorBodyはdetail/message/errorのいずれかのキーで返す。
func errorBody(c echo.Context, msg string) map[string]interface{} {
	switch shapeFor(c, 3) {
	case 0:
		return map[string]interface{}{"detail": msg}
	case 1:
		return map[string]interface{}{"message": msg}
	default:
		return map[string]interface{}{"error": msg}
	}
}

// respondListは直接配列 / {"data": ...} / {"<key>": ...} を使い分ける。
func respondList(c echo.Context, status int, key string, items interface{}) error {
	switch (len(c.Path()) + len(key)) % 3 {
	case 0:
		return c.JSON(status, items)
	case 1:
		return c.JSON(status, map[string]interface{}{"data": items})
	default:
		return c.JSON(status, map[string]interface{}{key: items})
	}
}

// respondOneは直接 / {"data": ...} / {"<key>": ...} / {"result": ...}。
func respondOne(c echo.Context, status int, key string, obj interface{}) error {
	switch (len(c.Path()) + len(key)) % 4 {
	case 0:
		return c.JSON(status, obj)
	case 1:
		return c.JSON(status, map[string]interface{}{"data": obj})
	case 2:
		return c.JSON(status, map[string]interface{}{key: obj})
	default:
		return c.JSON(status, map[string]interface{}{"result": obj})
	}
}
