package vrtmax

// Query documents for the VRT MAX public GraphQL API. Each document is
// paired with one named operation and the engine depends only on the
// field paths decoded in components.go.

const videoPageQuery = `
query VideoPage($pageId: ID!) {
  page(id: $pageId) {
    ... on EpisodePage {
      episode {
        id
        title
        name
        program {
          id
          link
          title
        }
        watchAction {
          streamId
          videoId
        }
      }
    }
  }
}`

const seriesListQuery = `
query PaginatedTileListPage($listId: ID!, $lazyItemCount: Int = 30, $after: ID, $before: ID) {
  list(listId: $listId) {
    __typename
    ... on PaginatedTileList {
      objectId
      listId
      title
      paginatedItems(first: $lazyItemCount, after: $after, before: $before) {
        edges {
          cursor
          node {
            __typename
            ...tileFields
          }
        }
        pageInfo {
          endCursor
          hasNextPage
          hasPreviousPage
          startCursor
        }
      }
    }
  }
}
fragment tileFields on Tile {
  ... on IIdentifiable {
    __typename
    objectId
  }
  ... on ITile {
    title
    description
    active
    image {
      templateUrl
    }
    primaryMeta {
      type
      value
      shortValue
      longValue
    }
  }
  ... on ProgramTile {
    link
  }
  ... on EpisodeTile {
    available
    formattedDuration
    playAction: watchAction {
      pageUrl: videoUrl
    }
    episode {
      objectId
      program {
        objectId
        link
      }
    }
  }
}`

const programPageQuery = `
query VideoProgramPage($pageId: ID!, $lazyItemCount: Int = 10, $after: ID, $before: ID) {
  page(id: $pageId) {
    ... on ProgramPage {
      objectId
      permalink
      components {
        __typename
        ...componentFields
        ... on ContainerNavigation {
          objectId
          items {
            objectId
            title
            active
            components {
              __typename
              ...componentFields
            }
          }
        }
      }
    }
  }
}
fragment componentFields on IComponent {
  ... on PaginatedTileList {
    objectId
    listId
    title
    paginatedItems(first: $lazyItemCount, after: $after, before: $before) {
      edges {
        cursor
        node {
          __typename
          ...tileFields
        }
      }
      pageInfo {
        endCursor
        hasNextPage
        hasPreviousPage
        startCursor
      }
    }
  }
  ... on StaticTileList {
    objectId
    listId
    title
    items {
      __typename
      ...tileFields
    }
  }
  ... on LazyTileList {
    objectId
    listId
    title
  }
}
fragment tileFields on Tile {
  ... on IIdentifiable {
    __typename
    objectId
  }
  ... on ITile {
    title
    description
    active
    image {
      templateUrl
    }
    primaryMeta {
      type
      value
      shortValue
      longValue
    }
  }
  ... on EpisodeTile {
    available
    formattedDuration
    playAction: watchAction {
      pageUrl: videoUrl
    }
    episode {
      objectId
      program {
        objectId
        link
      }
    }
  }
}`

const lazyListQuery = `
query MoreSeasons($listId: ID!) {
  list(listId: $listId) {
    __typename
    ... on StaticTileList {
      objectId
      listId
      title
      items {
        __typename
        ...tileFields
      }
    }
  }
}
fragment tileFields on Tile {
  ... on IIdentifiable {
    __typename
    objectId
  }
  ... on ITile {
    title
    description
    active
    image {
      templateUrl
    }
    primaryMeta {
      type
      value
      shortValue
      longValue
    }
  }
  ... on EpisodeTile {
    available
    formattedDuration
    playAction: watchAction {
      pageUrl: videoUrl
    }
    episode {
      objectId
      program {
        objectId
        link
      }
    }
  }
}`
