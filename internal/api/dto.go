package api

// APIError is the error body returned by every failing endpoint.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type FileEntry struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type FileListResponse struct {
	Object string      `json:"object"`
	Files  []FileEntry `json:"files"`
}

// TOCEntry mirrors one block descriptor, carrying the kind both as its
// numeric code and its display name.
type TOCEntry struct {
	Index    int    `json:"index"`
	Kind     uint32 `json:"kind"`
	KindName string `json:"kind_name"`
	Offset   uint32 `json:"offset"`
	Length   uint32 `json:"length"`
}

type TOCResponse struct {
	Object      string     `json:"object"`
	File        string     `json:"file"`
	ByteSwapped bool       `json:"byte_swapped"`
	Blocks      []TOCEntry `json:"blocks"`
}
