package layout

// photoGap расстояние между фотографиями на странице
const photoGap = 10

// SplitColumns раскладывает total элементов по columns колонкам.
// Каждая колонка берет ceil(оставшиеся / оставшиеся колонки): 7 на 3 дает [3, 2, 2]
func SplitColumns(total, columns int) []int {
	if columns <= 0 {
		return nil
	}
	sizes := make([]int, columns)
	left := total
	for i := 0; i < columns && left > 0; i++ {
		rest := columns - i
		n := (left + rest - 1) / rest
		sizes[i] = n
		left -= n
	}
	return sizes
}

// PaginatePhotos количество фотографий на каждой странице.
// Первая страница берет остаток от деления на 4, остальные по 4
func PaginatePhotos(count int) []int {
	if count <= 0 {
		return nil
	}
	pages := make([]int, 0, count/4+1)
	if first := count % 4; first > 0 {
		pages = append(pages, first)
	}
	for i := 0; i < count/4; i++ {
		pages = append(pages, 4)
	}
	return pages
}

// PhotoFrames области под фотографии на странице с count фотографиями:
// 1 на всю страницу, 2 рядом, 3 как одна большая и две малые справа, 4 сеткой 2x2
func PhotoFrames(count int, pageW, pageH float64) []Box {
	halfW := pageW/2 - photoGap/2
	halfH := pageH/2 - photoGap/2
	right := halfW + photoGap
	bottom := halfH + photoGap

	switch count {
	case 1:
		return []Box{{X: 0, Y: 0, W: pageW, H: pageH}}
	case 2:
		return []Box{
			{X: 0, Y: 0, W: halfW, H: pageH},
			{X: right, Y: 0, W: halfW, H: pageH},
		}
	case 3:
		return []Box{
			{X: 0, Y: 0, W: halfW, H: pageH},
			{X: right, Y: 0, W: halfW, H: halfH},
			{X: right, Y: bottom, W: halfW, H: halfH},
		}
	case 4:
		return []Box{
			{X: 0, Y: 0, W: halfW, H: halfH},
			{X: right, Y: 0, W: halfW, H: halfH},
			{X: 0, Y: bottom, W: halfW, H: halfH},
			{X: right, Y: bottom, W: halfW, H: halfH},
		}
	}
	return nil
}
