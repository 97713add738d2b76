package dto

// Short DTOs used when embedding a related record into a response.

type ShortRefDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type ShortUserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}
