package statuspage

import "net/http"

// StatusMessage returns a short, human-readable description of the given HTTP
// status code.
func StatusMessage(statusCode int) string {
	switch statusCode {
	// 4xx
	case http.StatusBadRequest:
		return "Your browser has sent a malformed request."
	case http.StatusNotFound:
		return "The page you've requested could not be found."
	case http.StatusRequestTimeout:
		return "Your browser did not send a request in a timely manner."
	case http.StatusRequestEntityTooLarge:
		return "Your browser has sent a request that's too large to process."

	// 5xx
	case http.StatusInternalServerError:
		return "The site you've requested could not be served, please try again."
	case http.StatusBadGateway:
		return "The site you've requested could not be contacted, please try again."
	case http.StatusServiceUnavailable:
		return "The site you've requested is temporarily unavailable, please try again."
	case http.StatusGatewayTimeout:
		return "The site you've requested did not respond in a timely manner, please try again."
	}

	if 400 <= statusCode && statusCode <= 599 {
		return "We're sorry, something went wrong!"
	}

	return "That's all we know."
}
