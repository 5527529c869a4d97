package pagemd

import "strings"

// Origin identifies the platform an article URL belongs to.
type Origin string

// Supported origins.
const (
	OriginWeChat      Origin = "wechat"
	OriginZhihu       Origin = "zhihu"
	OriginXiaohongshu Origin = "xiaohongshu"
	OriginJuejin      Origin = "juejin"
	OriginCSDN        Origin = "csdn"
	OriginGeneric     Origin = "generic"
)

// originMarker ties a URL substring to an origin.
type originMarker struct {
	substr string
	origin Origin
}

// originMarkers is checked in order; the first matching marker wins.
var originMarkers = []originMarker{
	{"mp.weixin.qq.com", OriginWeChat},
	{"zhihu.com", OriginZhihu},
	{"xiaohongshu.com", OriginXiaohongshu},
	{"xhslink.com", OriginXiaohongshu},
	{"juejin.cn", OriginJuejin},
	{"csdn.net", OriginCSDN},
}

// Classify returns the origin for a URL.
// URLs that match no known marker are OriginGeneric.
func Classify(rawURL string) Origin {
	for _, m := range originMarkers {
		if strings.Contains(rawURL, m.substr) {
			return m.origin
		}
	}
	return OriginGeneric
}

// Origins returns all known origins in classification order, followed by OriginGeneric.
func Origins() []Origin {
	origins := make([]Origin, 0, len(originMarkers)+1)
	seen := make(map[Origin]bool)
	for _, m := range originMarkers {
		if !seen[m.origin] {
			seen[m.origin] = true
			origins = append(origins, m.origin)
		}
	}
	return append(origins, OriginGeneric)
}

// Label returns the human-readable platform name used in documents.
func (o Origin) Label() string {
	switch o {
	case OriginWeChat:
		return "WeChat Official Account"
	case OriginZhihu:
		return "Zhihu"
	case OriginXiaohongshu:
		return "Xiaohongshu"
	case OriginJuejin:
		return "Juejin"
	case OriginCSDN:
		return "CSDN"
	case OriginGeneric:
		return "Web Page"
	}
	return "Unknown"
}
