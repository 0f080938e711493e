package presentation

func findRealty(req *Request, realtyID string) *Realty {
	for i := range req.Data {
		if req.Data[i].ID == realtyID {
			return &req.Data[i]
		}
	}
	return nil
}

func findArea(req *Request, realtyID, objectID string) *RealtyObject {
	realty := findRealty(req, realtyID)
	if realty == nil {
		return nil
	}
	for i := range realty.RealtyObjects {
		if realty.RealtyObjects[i].ID == objectID {
			return &realty.RealtyObjects[i]
		}
	}
	return nil
}

// findOffer ищет предложение по собственному id внутри найденного помещения
func findOffer(req *Request, realtyID, objectID, offerID string) *RealtyOffer {
	area := findArea(req, realtyID, objectID)
	if area == nil {
		return nil
	}
	for i := range area.RealtyOffers {
		if area.RealtyOffers[i].ID == offerID {
			return &area.RealtyOffers[i]
		}
	}
	return nil
}
