package rank

import "math"

// 地球半径（km）
const earthRadiusKm = 6371.0

// Coordinate 地理坐标
type Coordinate struct {
    Lat float64
    Lng float64
}

// HaversineKm 球面大圆距离（km）
func HaversineKm(a, b Coordinate) float64 {
    lat1 := a.Lat * math.Pi / 180
    lat2 := b.Lat * math.Pi / 180
    dLat := (b.Lat - a.Lat) * math.Pi / 180
    dLng := (b.Lng - a.Lng) * math.Pi / 180

    h := math.Sin(dLat/2)*math.Sin(dLat/2) +
        math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
    return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// WithinRadius 判断目标点是否在 origin 的 radiusKm 半径内，并返回距离。
// 调用方需保证目标点存在坐标；无坐标的内容由上层直接排除。
func WithinRadius(origin Coordinate, radiusKm float64, target Coordinate) (bool, float64) {
    d := HaversineKm(origin, target)
    return d <= radiusKm, d
}
