package model

// Category 统一的行事分类（由 TourAPI contenttypeid 归一化得到）
type Category string

const (
	CategoryAll      Category = "all"
	CategoryTourist  Category = "tourist"  // 12 관광지
	CategoryCulture  Category = "culture"  // 14 문화시설
	CategoryFestival Category = "festival" // 15 축제공연행사
	CategoryTravel   Category = "travel"   // 25 여행코스
)

// 归一化时各字段的兜底值
const (
	DefaultTitle       = "제목 없음"
	DefaultPlace       = "장소 미정"
	DefaultPrice       = "가격 문의"
	DefaultDescription = "상세 정보가 없습니다."
	DefaultDate        = "날짜 미정"
	FreePrice          = "무료"
)

// Categories 按声明顺序列出全部具体分类（不含 all），聚合时按此顺序遍历分区
var Categories = []Category{CategoryTourist, CategoryCulture, CategoryFestival, CategoryTravel}

// Valid 是否为具体分类
func (c Category) Valid() bool {
	switch c {
	case CategoryTourist, CategoryCulture, CategoryFestival, CategoryTravel:
		return true
	}
	return false
}

// Event 聚合后的统一行事记录（每次请求现算，不落库）
// 所有字段都有兜底值，调用方无需判空
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Date        string   `json:"date"`      // 展示用日期区间：2024.01.01 ~ 2024.01.31
	StartDate   string   `json:"startDate"` // 上游原始 YYYYMMDD
	EndDate     string   `json:"endDate"`
	Place       string   `json:"place"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Tel         string   `json:"tel,omitempty"`
	Playtime    string   `json:"playtime,omitempty"`
	AgeLimit    string   `json:"ageLimit,omitempty"`
	Source      string   `json:"source,omitempty"` // 产出该记录的上游接口
}

// contentTypeCategory TourAPI contenttypeid → 分类
var contentTypeCategory = map[string]Category{
	"12": CategoryTourist,
	"14": CategoryCulture,
	"15": CategoryFestival,
	"25": CategoryTravel,
}

// CategoryFromContentType 查表；未知代码返回默认分类 festival 且 ok=false
func CategoryFromContentType(code string) (Category, bool) {
	if c, ok := contentTypeCategory[code]; ok {
		return c, true
	}
	return CategoryFestival, false
}

// ContentTypeID 分类对应的 contenttypeid，非具体分类返回空串
func (c Category) ContentTypeID() string {
	for code, cat := range contentTypeCategory {
		if cat == c {
			return code
		}
	}
	return ""
}

// ContentTypesFor 把筛选条件展开为要查询的 contenttypeid 列表；all 或无法识别的值展开为全部
func ContentTypesFor(filter Category) []string {
	if filter.Valid() {
		return []string{filter.ContentTypeID()}
	}
	codes := make([]string, 0, len(Categories))
	for _, c := range Categories {
		codes = append(codes, c.ContentTypeID())
	}
	return codes
}
